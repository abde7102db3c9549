package quiz

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/korjavin/dailyquizbot/database"
	"github.com/korjavin/dailyquizbot/models"
)

var errBoom = errors.New("boom")

// memStore is an in-memory Store for state machine tests
type memStore struct {
	nextID    int64
	quizzes   map[int64]*models.Quiz
	questions map[int64]*models.Question
	answers   map[int64]*models.Answer
	users     map[int64]*models.User
	attempts  map[int64]*models.UserAttempt
	responses []models.UserResponse

	failCreateAttempt bool
	failAddQuestion   bool
}

func newMemStore() *memStore {
	return &memStore{
		quizzes:   make(map[int64]*models.Quiz),
		questions: make(map[int64]*models.Question),
		answers:   make(map[int64]*models.Answer),
		users:     make(map[int64]*models.User),
		attempts:  make(map[int64]*models.UserAttempt),
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) CreateQuiz(ctx context.Context, quiz models.Quiz) (int64, error) {
	quiz.ID = m.id()
	m.quizzes[quiz.ID] = &quiz
	return quiz.ID, nil
}

func (m *memStore) CreateQuizWithQuestions(ctx context.Context, quiz models.Quiz, drafts []models.QuestionDraft) (int64, error) {
	quiz.QuestionCount = len(drafts)
	id, _ := m.CreateQuiz(ctx, quiz)
	for _, d := range drafts {
		m.insertQuestion(id, d)
	}
	return id, nil
}

func (m *memStore) insertQuestion(quizID int64, d models.QuestionDraft) int64 {
	q := &models.Question{ID: m.id(), QuizID: quizID, Text: d.Text}
	m.questions[q.ID] = q
	for _, a := range d.Answers {
		a.ID = m.id()
		a.QuestionID = q.ID
		m.answers[a.ID] = &a
	}
	return q.ID
}

func (m *memStore) AddQuestion(ctx context.Context, quizID int64, d models.QuestionDraft) (int64, error) {
	if m.failAddQuestion {
		return 0, errBoom
	}
	quiz, ok := m.quizzes[quizID]
	if !ok {
		return 0, database.ErrNotFound
	}
	quiz.QuestionCount++
	return m.insertQuestion(quizID, d), nil
}

func (m *memStore) GetQuiz(ctx context.Context, id int64) (*models.Quiz, error) {
	q, ok := m.quizzes[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	cp := *q
	return &cp, nil
}

func (m *memStore) sortedQuizzes() []models.Quiz {
	var out []models.Quiz
	for _, q := range m.quizzes {
		out = append(out, *q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memStore) ActiveQuiz(ctx context.Context) (*models.Quiz, error) {
	for _, q := range m.sortedQuizzes() {
		if q.IsActive {
			return &q, nil
		}
	}
	return nil, database.ErrNotFound
}

func (m *memStore) ListQuizzes(ctx context.Context) ([]models.Quiz, error) {
	return m.sortedQuizzes(), nil
}

func (m *memStore) ListQuizzesByStatus(ctx context.Context, active bool) ([]models.Quiz, error) {
	var out []models.Quiz
	for _, q := range m.sortedQuizzes() {
		if q.IsActive == active {
			out = append(out, q)
		}
	}
	return out, nil
}

func (m *memStore) SetQuizActive(ctx context.Context, id int64, active bool) error {
	q, ok := m.quizzes[id]
	if !ok {
		return database.ErrNotFound
	}
	q.IsActive = active
	return nil
}

func (m *memStore) DeleteQuiz(ctx context.Context, id int64) error {
	if _, ok := m.quizzes[id]; !ok {
		return database.ErrNotFound
	}
	for qid, q := range m.questions {
		if q.QuizID != id {
			continue
		}
		for aid, a := range m.answers {
			if a.QuestionID == qid {
				delete(m.answers, aid)
			}
		}
		delete(m.questions, qid)
	}
	delete(m.quizzes, id)
	return nil
}

func (m *memStore) QuestionsByQuiz(ctx context.Context, quizID int64) ([]models.Question, error) {
	var out []models.Question
	for _, q := range m.questions {
		if q.QuizID == quizID {
			out = append(out, *q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) AnswersByQuestion(ctx context.Context, questionID int64) ([]models.Answer, error) {
	var out []models.Answer
	for _, a := range m.answers {
		if a.QuestionID == questionID {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) GetAnswer(ctx context.Context, id int64) (*models.Answer, error) {
	a, ok := m.answers[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memStore) CorrectAnswer(ctx context.Context, questionID int64) (*models.Answer, error) {
	answers, _ := m.AnswersByQuestion(ctx, questionID)
	for _, a := range answers {
		if a.IsCorrect {
			return &a, nil
		}
	}
	return nil, database.ErrNotFound
}

func (m *memStore) EnsureUser(ctx context.Context, id int64, username string) error {
	if _, ok := m.users[id]; !ok {
		m.users[id] = &models.User{ID: id, Username: username}
	}
	return nil
}

func (m *memStore) GetUser(ctx context.Context, id int64) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memStore) SetUserEmail(ctx context.Context, id int64, email string) error {
	u, ok := m.users[id]
	if !ok {
		return database.ErrNotFound
	}
	u.Email = email
	return nil
}

func (m *memStore) CreateAttempt(ctx context.Context, a models.UserAttempt) (int64, error) {
	if m.failCreateAttempt {
		return 0, errBoom
	}
	a.ID = m.id()
	m.attempts[a.ID] = &a
	return a.ID, nil
}

func (m *memStore) latest(userID, quizID int64, winnerOnly bool) (*models.UserAttempt, error) {
	var best *models.UserAttempt
	for _, a := range m.attempts {
		if a.UserID != userID || a.QuizID != quizID || (winnerOnly && !a.IsWinner) {
			continue
		}
		if best == nil || a.Timestamp.After(best.Timestamp) || (a.Timestamp.Equal(best.Timestamp) && a.ID > best.ID) {
			best = a
		}
	}
	if best == nil {
		return nil, database.ErrNotFound
	}
	cp := *best
	return &cp, nil
}

func (m *memStore) LatestAttempt(ctx context.Context, userID, quizID int64) (*models.UserAttempt, error) {
	return m.latest(userID, quizID, false)
}

func (m *memStore) LatestWinningAttempt(ctx context.Context, userID, quizID int64) (*models.UserAttempt, error) {
	return m.latest(userID, quizID, true)
}

func (m *memStore) FinishAttempt(ctx context.Context, id int64, correct int, winner bool) error {
	a, ok := m.attempts[id]
	if !ok {
		return database.ErrNotFound
	}
	a.CorrectAnswers = correct
	a.IsWinner = winner
	return nil
}

func (m *memStore) CreateResponse(ctx context.Context, r models.UserResponse) (int64, error) {
	r.ID = m.id()
	m.responses = append(m.responses, r)
	return r.ID, nil
}

// addActiveQuiz stores an active quiz whose questions each have a correct
// answer equal to the question index ("1", "2", ...) and one wrong answer "x".
func (m *memStore) addActiveQuiz(title string, questions int) int64 {
	drafts := make([]models.QuestionDraft, questions)
	for i := range drafts {
		drafts[i] = models.QuestionDraft{
			Text: title + " question",
			Answers: []models.Answer{
				{Text: string(rune('1' + i)), IsCorrect: true},
				{Text: "x"},
			},
		}
	}
	id, _ := m.CreateQuizWithQuestions(context.Background(), models.Quiz{Title: title, IsActive: true}, drafts)
	return id
}

type fixedClock struct {
	t time.Time
}

func (c *fixedClock) now() time.Time { return c.t }
