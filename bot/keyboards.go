package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/korjavin/dailyquizbot/models"
)

// Callback payloads follow <namespace>_<action>[_<id>]
const (
	cbAdminAddQuiz        = "admin_add_quiz"
	cbAdminActivateQuiz   = "admin_activate_quiz"
	cbAdminDeactivateQuiz = "admin_deactivate_quiz"
	cbAdminDeleteQuiz     = "admin_delete_quiz"
	cbAdminListQuizzes    = "admin_list_quizzes"
	cbAdminHelp           = "admin_help"

	cbQuizStart = "quiz_start"

	cbConfirmAddQuestion  = "confirm_add_question"
	cbConfirmActivateQuiz = "confirm_activate_quiz"
	cbConfirmDelete       = "confirm_delete"
	cbConfirmCancel       = "confirm_cancel"

	nsAdmin      = "admin"
	nsQuiz       = "quiz"
	nsConfirm    = "confirm"
	nsAnswer     = "answer"
	nsActivate   = "activate"
	nsDeactivate = "deactivate"
	nsDelete     = "delete"
)

func adminMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Добавить квиз", cbAdminAddQuiz),
			tgbotapi.NewInlineKeyboardButtonData("Активация квиза", cbAdminActivateQuiz),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Деактивация квиза", cbAdminDeactivateQuiz),
			tgbotapi.NewInlineKeyboardButtonData("Удалить квиз", cbAdminDeleteQuiz),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Список квизов", cbAdminListQuizzes),
			tgbotapi.NewInlineKeyboardButtonData("Помощь", cbAdminHelp),
		),
	)
}

func userMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎯 Начать квиз", cbQuizStart),
		),
	)
}

func continuationKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Добавить вопрос", cbConfirmAddQuestion),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Активировать квиз", cbConfirmActivateQuiz),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Завершить без активации", cbConfirmCancel),
		),
	)
}

func deleteConfirmKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Да", cbConfirmDelete),
			tgbotapi.NewInlineKeyboardButtonData("Нет", cbConfirmCancel),
		),
	)
}

// quizListKeyboard shows one button per quiz with callback data <action>_<id>
func quizListKeyboard(quizzes []models.Quiz, action string) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(quizzes))
	for _, q := range quizzes {
		label := fmt.Sprintf("%s (ID: %d)", q.Title, q.ID)
		data := fmt.Sprintf("%s_%d", action, q.ID)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(label, data)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func answersKeyboard(answers []models.Answer) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(answers))
	for _, a := range answers {
		data := fmt.Sprintf("%s_%d", nsAnswer, a.ID)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(a.Text, data)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
