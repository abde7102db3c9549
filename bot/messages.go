package bot

const (
	msgAdminWelcome = "Добро пожаловать в панель администратора."
	msgUserWelcome  = "Привет! Готовы начать квиз? Напишите /quiz, чтобы начать."
	msgAdminDefault = "Выберите действие из меню ниже."
	msgUserDefault  = "Напишите /quiz, чтобы начать квиз, или /help для справки."

	msgAdminHelp = `Доступные команды:
/start - Главное меню
/add_quiz - Добавить квиз
/activate_quiz - Активировать квиз
/deactivate_quiz - Деактивировать квиз
/delete_quiz - Удалить квиз
/list_quizzes - Список квизов
/add_admin @username - Добавить администратора
/remove_admin @username - Удалить администратора
/list_admins - Список администраторов
/cancel - Отменить текущее действие

Используйте кнопки для управления квизами.`

	msgUserHelp = `Каждый день можно один раз пройти активный квиз.
Ответьте правильно на все вопросы, чтобы выиграть приз.

/quiz - Начать квиз
/cancel - Прервать текущее действие`

	msgUnknownCommand = "Неизвестная команда. Напишите /help для справки."
	msgStaleButton    = "Эта кнопка больше не активна."
	msgNotAdmin       = "У вас нет прав для выполнения этой команды."
	msgCancelled      = "Действие отменено."
	msgStorageError   = "Произошла ошибка. Попробуйте позже."

	msgNoActiveQuiz   = "В данный момент нет активных квизов."
	msgAlreadyWon     = "Вы уже выиграли в этом квизе. Дождитесь следующего квиза!"
	msgAttemptedToday = "Вы уже участвовали в квизе сегодня. Попробуйте снова завтра."
	msgQuizStarting   = "Начинаем квиз!"
	msgQuestion       = "❓ Вопрос %d/%d\n\n%s"
	msgTypeAnswer     = "\n\nНапишите ответ сообщением."
	msgUseButtons     = "Пожалуйста, выберите вариант ответа кнопкой."
	msgYourAnswer     = "%s\n\n✏️ Ваш ответ: %s"
	msgQuestionBroken = "У этого вопроса нет правильного ответа. Квиз прерван, сообщите администратору."
	msgWinner         = "Поздравляем! Вы ответили правильно на все вопросы."
	msgAskEmail       = "Пожалуйста, введите ваш email для получения приза:"
	msgAskEmailKnown  = "Ваш сохраненный email: %s. Отправьте его еще раз или введите новый:"
	msgScore          = "Вы ответили правильно на %d из %d вопросов. Попробуйте снова завтра!"
	msgInvalidEmail   = "Похоже, вы ввели некорректный email. Пожалуйста, попробуйте снова."
	msgEmailSaved     = "Спасибо! Ваш email сохранен. Мы свяжемся с вами для получения приза."

	msgAskQuizTitle    = "Введите название нового квиза:"
	msgEmptyTitle      = "Название не может быть пустым. Введите название квиза:"
	msgQuizCreated     = "Квиз создан. Теперь введите текст первого вопроса:"
	msgEmptyQuestion   = "Текст вопроса не может быть пустым. Введите текст вопроса:"
	msgAskOptions      = "Введите варианты ответов в формате:\nТекст ответа | правильный (да/нет)\nВводите по одному варианту на сообщение. Когда закончите, отправьте команду /done."
	msgOptionFormat    = "Пожалуйста, используйте формат:\nТекст ответа | правильный (да/нет)"
	msgOptionSaved     = "Ответ сохранен. Введите следующий вариант или отправьте /done, чтобы закончить."
	msgTooFewOptions   = "Должно быть минимум 2 варианта ответа."
	msgNoCorrectOption = "Должен быть хотя бы один правильный ответ."
	msgQuestionSaved   = "Вопрос и ответы сохранены. Что дальше?"
	msgNextQuestion    = "Введите текст следующего вопроса:"
	msgQuizActivated   = "Квиз активирован и готов для пользователей."
	msgQuizSavedIdle   = "Квиз сохранен без активации. Активировать его можно позже из меню."
	msgAnotherActive   = "Другой квиз уже активен. Сначала деактивируйте его. Этот квиз сохранен неактивным."

	msgAskQuizBlock = `Отправьте квиз одним сообщением в формате:
Название квиза: <название>
Вопросы:
1. <текст вопроса>
Ответ: <ответ>
2. <текст вопроса>
Ответ: <ответ>`
	msgQuizBlockInvalid = "Не удалось разобрать квиз: %s\nНачните заново с /add_quiz."
	msgQuizBlockCreated = "Квиз «%s» создан, вопросов: %d. Активировать его можно из меню."

	msgChooseActivate   = "Выберите квиз для активации:"
	msgChooseDeactivate = "Выберите квиз для деактивации:"
	msgChooseDelete     = "Выберите квиз для удаления:"
	msgNoInactive       = "Нет неактивных квизов."
	msgNoActive         = "Нет активных квизов."
	msgNoQuizzes        = "Квизы не найдены."
	msgQuizListHeader   = "Список квизов:\n"
	msgQuizListLine     = "ID: %d, Название: %s, Вопросов: %d, Статус: %s\n"
	msgStatusActive     = "Активен"
	msgStatusInactive   = "Не активен"
	msgActivated        = "Квиз «%s» активирован."
	msgDeactivated      = "Квиз «%s» деактивирован."
	msgQuizNotFound     = "Квиз не найден."
	msgQuizEmpty        = "В квизе нет вопросов, его нельзя активировать."
	msgConfirmDelete    = "Удалить квиз «%s» вместе со всеми вопросами и ответами?"
	msgDeleted          = "Квиз удален."

	msgAddAdminUsage    = "Укажите имя пользователя: /add_admin @username"
	msgRemoveAdminUsage = "Укажите имя пользователя: /remove_admin @username"
	msgAdminAdded       = "Пользователь @%s добавлен в администраторы."
	msgAdminExists      = "Пользователь @%s уже администратор."
	msgAdminRemoved     = "Пользователь @%s больше не администратор."
	msgAdminMissing     = "Пользователь @%s не является администратором."
	msgRemoveSelf       = "Нельзя удалить самого себя из администраторов."
	msgAdminList        = "Администраторы:\n%s"
)
