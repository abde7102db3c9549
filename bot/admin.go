package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/korjavin/dailyquizbot/identity"
	"github.com/korjavin/dailyquizbot/quiz"
	"github.com/korjavin/dailyquizbot/session"
)

// handleAdminButton dispatches the admin menu buttons
func (b *Bot) handleAdminButton(ctx context.Context, ev event) error {
	switch ev.text {
	case cbAdminAddQuiz:
		return b.handleAddQuiz(ctx, ev)
	case cbAdminActivateQuiz:
		return b.handleActivateList(ctx, ev)
	case cbAdminDeactivateQuiz:
		return b.handleDeactivateList(ctx, ev)
	case cbAdminDeleteQuiz:
		return b.handleDeleteList(ctx, ev)
	case cbAdminListQuizzes:
		return b.handleListQuizzes(ctx, ev)
	case cbAdminHelp:
		b.sendMessage(ev.chatID, msgAdminHelp)
		return nil
	}
	return b.handleStaleCallback(ctx, ev)
}

func (b *Bot) handleAddQuiz(_ context.Context, ev event) error {
	st := b.authoring.Begin()
	b.sessions.Set(ev.key(), st)

	if _, bulk := st.(session.AwaitingQuizBlock); bulk {
		b.sendMessage(ev.chatID, msgAskQuizBlock)
		return nil
	}
	b.sendMessage(ev.chatID, msgAskQuizTitle)
	return nil
}

func (b *Bot) handleQuizTitle(ctx context.Context, ev event) error {
	next, err := b.authoring.CreateQuiz(ctx, ev.text)
	if errors.Is(err, quiz.ErrEmptyTitle) {
		b.sendMessage(ev.chatID, msgEmptyTitle)
		return nil
	}
	if err != nil {
		return err
	}

	b.sessions.Set(ev.key(), next)
	b.sendMessage(ev.chatID, msgQuizCreated)
	return nil
}

func (b *Bot) handleQuestionText(_ context.Context, ev event, st session.AwaitingQuestionText) error {
	next, err := b.authoring.BeginQuestion(st, ev.text)
	if errors.Is(err, quiz.ErrEmptyQuestion) {
		b.sendMessage(ev.chatID, msgEmptyQuestion)
		return nil
	}
	if err != nil {
		return err
	}

	b.sessions.Set(ev.key(), next)
	b.sendMessage(ev.chatID, msgAskOptions)
	return nil
}

func (b *Bot) handleAnswerOption(ctx context.Context, ev event, st session.AwaitingAnswerOptions) error {
	// Some clients send "/done" without a command entity
	if strings.EqualFold(strings.TrimSpace(ev.text), "/done") {
		return b.handleDone(ctx, ev, st)
	}

	next, err := b.authoring.AddOption(st, ev.text)
	if errors.Is(err, quiz.ErrInvalidOptionLine) {
		b.sendMessage(ev.chatID, msgOptionFormat)
		return nil
	}
	if err != nil {
		return err
	}

	b.sessions.Set(ev.key(), next)
	b.sendMessage(ev.chatID, msgOptionSaved)
	return nil
}

func (b *Bot) handleDone(ctx context.Context, ev event, st session.AwaitingAnswerOptions) error {
	next, err := b.authoring.CompleteQuestion(ctx, st)
	switch {
	case errors.Is(err, quiz.ErrTooFewOptions):
		b.sendMessage(ev.chatID, msgTooFewOptions)
		return nil
	case errors.Is(err, quiz.ErrNoCorrectOption):
		b.sendMessage(ev.chatID, msgNoCorrectOption)
		return nil
	case err != nil:
		return err
	}

	b.sessions.Set(ev.key(), next)
	b.sendKeyboard(ev.chatID, msgQuestionSaved, continuationKeyboard())
	return nil
}

func (b *Bot) handleContinuation(ctx context.Context, ev event, st session.ConfirmingContinuation) error {
	switch ev.text {
	case cbConfirmAddQuestion:
		b.sessions.Set(ev.key(), session.AwaitingQuestionText{QuizID: st.QuizID})
		b.sendMessage(ev.chatID, msgNextQuestion)
		return nil

	case cbConfirmActivateQuiz:
		err := b.authoring.Activate(ctx, st.QuizID)
		if errors.Is(err, quiz.ErrAnotherQuizActive) {
			b.sessions.Clear(ev.key())
			b.sendKeyboard(ev.chatID, msgAnotherActive, adminMenuKeyboard())
			return nil
		}
		if err != nil {
			return err
		}
		b.sessions.Clear(ev.key())
		b.sendKeyboard(ev.chatID, msgQuizActivated, adminMenuKeyboard())
		return nil

	case cbConfirmCancel:
		b.sessions.Clear(ev.key())
		b.sendKeyboard(ev.chatID, msgQuizSavedIdle, adminMenuKeyboard())
		return nil
	}
	return b.handleStaleCallback(ctx, ev)
}

func (b *Bot) handleQuizBlock(ctx context.Context, ev event) error {
	created, err := b.authoring.CreateFromBlock(ctx, ev.text)
	var perr *quiz.ParseError
	if errors.As(err, &perr) {
		b.sessions.Clear(ev.key())
		b.sendMessage(ev.chatID, fmt.Sprintf(msgQuizBlockInvalid, perr.Error()))
		return nil
	}
	if err != nil {
		return err
	}

	b.sessions.Clear(ev.key())
	b.sendKeyboard(ev.chatID,
		fmt.Sprintf(msgQuizBlockCreated, created.Title, created.QuestionCount),
		adminMenuKeyboard())
	return nil
}

func (b *Bot) handleActivateList(ctx context.Context, ev event) error {
	return b.sendQuizChoice(ctx, ev, quiz.StatusInactive, nsActivate, msgChooseActivate, msgNoInactive)
}

func (b *Bot) handleDeactivateList(ctx context.Context, ev event) error {
	return b.sendQuizChoice(ctx, ev, quiz.StatusActive, nsDeactivate, msgChooseDeactivate, msgNoActive)
}

func (b *Bot) handleDeleteList(ctx context.Context, ev event) error {
	return b.sendQuizChoice(ctx, ev, quiz.StatusAll, nsDelete, msgChooseDelete, msgNoQuizzes)
}

func (b *Bot) sendQuizChoice(ctx context.Context, ev event, status quiz.Status, action, prompt, empty string) error {
	quizzes, err := b.authoring.List(ctx, status)
	if err != nil {
		return err
	}
	if len(quizzes) == 0 {
		b.sendMessage(ev.chatID, empty)
		return nil
	}
	b.sendKeyboard(ev.chatID, prompt, quizListKeyboard(quizzes, action))
	return nil
}

func (b *Bot) handleListQuizzes(ctx context.Context, ev event) error {
	quizzes, err := b.authoring.List(ctx, quiz.StatusAll)
	if err != nil {
		return err
	}
	if len(quizzes) == 0 {
		b.sendMessage(ev.chatID, msgNoQuizzes)
		return nil
	}

	var sb strings.Builder
	sb.WriteString(msgQuizListHeader)
	for _, q := range quizzes {
		status := msgStatusInactive
		if q.IsActive {
			status = msgStatusActive
		}
		fmt.Fprintf(&sb, msgQuizListLine, q.ID, q.Title, q.QuestionCount, status)
	}
	b.sendMessage(ev.chatID, sb.String())
	return nil
}

// quizIDFromCallback extracts the id from "<action>_<id>"
func quizIDFromCallback(data, action string) (int64, error) {
	raw, ok := strings.CutPrefix(data, action+"_")
	if !ok {
		return 0, fmt.Errorf("callback %q has no %q prefix", data, action)
	}
	return strconv.ParseInt(raw, 10, 64)
}

func (b *Bot) handleActivate(ctx context.Context, ev event) error {
	id, err := quizIDFromCallback(ev.text, nsActivate)
	if err != nil {
		log.Printf("[%s] Invalid callback format: %s", ev.id, ev.text)
		return b.handleStaleCallback(ctx, ev)
	}

	err = b.authoring.Activate(ctx, id)
	if msg, handled := quizLifecycleMessage(err); handled {
		b.sendMessage(ev.chatID, msg)
		return nil
	}
	if err != nil {
		return err
	}
	return b.reportQuiz(ctx, ev, id, msgActivated)
}

func (b *Bot) handleDeactivate(ctx context.Context, ev event) error {
	id, err := quizIDFromCallback(ev.text, nsDeactivate)
	if err != nil {
		log.Printf("[%s] Invalid callback format: %s", ev.id, ev.text)
		return b.handleStaleCallback(ctx, ev)
	}

	err = b.authoring.Deactivate(ctx, id)
	if msg, handled := quizLifecycleMessage(err); handled {
		b.sendMessage(ev.chatID, msg)
		return nil
	}
	if err != nil {
		return err
	}
	return b.reportQuiz(ctx, ev, id, msgDeactivated)
}

// reportQuiz replies with a message formatted with the quiz title
func (b *Bot) reportQuiz(ctx context.Context, ev event, id int64, format string) error {
	q, err := b.authoring.Get(ctx, id)
	if err != nil {
		return err
	}
	b.sendKeyboard(ev.chatID, fmt.Sprintf(format, q.Title), adminMenuKeyboard())
	return nil
}

func quizLifecycleMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, quiz.ErrQuizNotFound):
		return msgQuizNotFound, true
	case errors.Is(err, quiz.ErrAnotherQuizActive):
		return msgAnotherActive, true
	case errors.Is(err, quiz.ErrQuizEmpty):
		return msgQuizEmpty, true
	}
	return "", false
}

func (b *Bot) handleDeleteSelect(ctx context.Context, ev event) error {
	id, err := quizIDFromCallback(ev.text, nsDelete)
	if err != nil {
		log.Printf("[%s] Invalid callback format: %s", ev.id, ev.text)
		return b.handleStaleCallback(ctx, ev)
	}

	q, err := b.authoring.Get(ctx, id)
	if errors.Is(err, quiz.ErrQuizNotFound) {
		b.sendMessage(ev.chatID, msgQuizNotFound)
		return nil
	}
	if err != nil {
		return err
	}

	b.sessions.Set(ev.key(), session.ConfirmingDelete{QuizID: id})
	b.sendKeyboard(ev.chatID, fmt.Sprintf(msgConfirmDelete, q.Title), deleteConfirmKeyboard())
	return nil
}

func (b *Bot) handleDeleteConfirm(ctx context.Context, ev event, st session.ConfirmingDelete) error {
	switch ev.text {
	case cbConfirmDelete:
		b.sessions.Clear(ev.key())
		err := b.authoring.Delete(ctx, st.QuizID)
		if errors.Is(err, quiz.ErrQuizNotFound) {
			b.sendMessage(ev.chatID, msgQuizNotFound)
			return nil
		}
		if err != nil {
			return err
		}
		b.sendKeyboard(ev.chatID, msgDeleted, adminMenuKeyboard())
		return nil

	case cbConfirmCancel:
		b.sessions.Clear(ev.key())
		b.sendKeyboard(ev.chatID, msgCancelled, adminMenuKeyboard())
		return nil
	}
	return b.handleStaleCallback(ctx, ev)
}

func (b *Bot) handleAddAdmin(ctx context.Context, ev event) error {
	username := firstArg(ev.text)
	if identity.Normalize(username) == "" {
		b.sendMessage(ev.chatID, msgAddAdminUsage)
		return nil
	}

	added, err := b.admins.Add(ctx, username)
	if err != nil {
		return err
	}
	name := identity.Normalize(username)
	if !added {
		b.sendMessage(ev.chatID, fmt.Sprintf(msgAdminExists, name))
		return nil
	}
	log.Printf("[%s] Admin %s added by %s", ev.id, name, ev.username)
	b.sendMessage(ev.chatID, fmt.Sprintf(msgAdminAdded, name))
	return nil
}

func (b *Bot) handleRemoveAdmin(ctx context.Context, ev event) error {
	username := firstArg(ev.text)
	name := identity.Normalize(username)
	if name == "" {
		b.sendMessage(ev.chatID, msgRemoveAdminUsage)
		return nil
	}
	if name == identity.Normalize(ev.username) {
		b.sendMessage(ev.chatID, msgRemoveSelf)
		return nil
	}

	removed, err := b.admins.Remove(ctx, username)
	if err != nil {
		return err
	}
	if !removed {
		b.sendMessage(ev.chatID, fmt.Sprintf(msgAdminMissing, name))
		return nil
	}
	log.Printf("[%s] Admin %s removed by %s", ev.id, name, ev.username)
	b.sendMessage(ev.chatID, fmt.Sprintf(msgAdminRemoved, name))
	return nil
}

func (b *Bot) handleListAdmins(ctx context.Context, ev event) error {
	names, err := b.admins.List(ctx)
	if err != nil {
		return err
	}
	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, "@"+name)
	}
	b.sendMessage(ev.chatID, fmt.Sprintf(msgAdminList, strings.Join(lines, "\n")))
	return nil
}

func firstArg(args string) string {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
