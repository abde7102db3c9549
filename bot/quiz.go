package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/korjavin/dailyquizbot/quiz"
	"github.com/korjavin/dailyquizbot/session"
)

func (b *Bot) handleQuizStart(ctx context.Context, ev event) error {
	st, err := b.taking.Start(ctx, quiz.Participant{UserID: ev.userID, Username: ev.username})
	switch {
	case errors.Is(err, quiz.ErrNoActiveQuiz), errors.Is(err, quiz.ErrQuizEmpty):
		b.sendMessage(ev.chatID, msgNoActiveQuiz)
		return nil
	case errors.Is(err, quiz.ErrAlreadyWon):
		b.sendMessage(ev.chatID, msgAlreadyWon)
		return nil
	case errors.Is(err, quiz.ErrAttemptedToday):
		b.sendMessage(ev.chatID, msgAttemptedToday)
		return nil
	case err != nil:
		return err
	}

	b.sendMessage(ev.chatID, msgQuizStarting)
	return b.presentQuestion(ctx, ev, st)
}

// presentQuestion stores the attempt state and sends the current question,
// or finishes the attempt when no questions are left.
func (b *Bot) presentQuestion(ctx context.Context, ev event, st session.AnsweringQuestions) error {
	question, ok := st.Current()
	if !ok {
		return b.finishAttempt(ctx, ev, st)
	}

	b.sessions.Set(ev.key(), st)
	text := fmt.Sprintf(msgQuestion, st.Index+1, len(st.Questions), question.Text)

	if b.taking.Mode() == quiz.ModeText {
		b.sendMessage(ev.chatID, text+msgTypeAnswer)
		return nil
	}

	answers, err := b.taking.Options(ctx, question)
	if err != nil {
		return err
	}
	b.sendKeyboard(ev.chatID, text, answersKeyboard(answers))
	return nil
}

func (b *Bot) finishAttempt(ctx context.Context, ev event, st session.AnsweringQuestions) error {
	res, err := b.taking.Finish(ctx, st)
	if err != nil {
		return err
	}

	if res.IsWinner {
		b.sessions.Set(ev.key(), session.WaitingForEmail{AttemptID: st.AttemptID})
		b.sendMessage(ev.chatID, msgWinner)

		known, err := b.taking.KnownEmail(ctx, ev.userID)
		if err != nil {
			return err
		}
		if known != "" {
			b.sendMessage(ev.chatID, fmt.Sprintf(msgAskEmailKnown, known))
			return nil
		}
		b.sendMessage(ev.chatID, msgAskEmail)
		return nil
	}

	b.sessions.Clear(ev.key())
	b.sendMessage(ev.chatID, fmt.Sprintf(msgScore, res.Correct, res.Total))
	return nil
}

func (b *Bot) handleChoiceAnswer(ctx context.Context, ev event, st session.AnsweringQuestions) error {
	if b.taking.Mode() != quiz.ModeChoice {
		return b.handleStaleCallback(ctx, ev)
	}
	input := strings.TrimPrefix(ev.text, nsAnswer+"_")
	return b.submitAnswer(ctx, ev, st, input)
}

func (b *Bot) handleTextAnswer(ctx context.Context, ev event, st session.AnsweringQuestions) error {
	if b.taking.Mode() != quiz.ModeText {
		b.sendMessage(ev.chatID, msgUseButtons)
		return nil
	}
	return b.submitAnswer(ctx, ev, st, ev.text)
}

func (b *Bot) submitAnswer(ctx context.Context, ev event, st session.AnsweringQuestions, input string) error {
	next, verdict, err := b.taking.Answer(ctx, st, input)
	switch {
	case errors.Is(err, quiz.ErrUnknownAnswer):
		b.sendMessage(ev.chatID, msgStaleButton)
		return nil
	case errors.Is(err, quiz.ErrCorrectAnswerMissing):
		log.Printf("[%s] Attempt %d aborted: %v", ev.id, st.AttemptID, err)
		b.sessions.Clear(ev.key())
		b.sendMessage(ev.chatID, msgQuestionBroken)
		return nil
	case err != nil:
		return err
	}

	if ev.kind == eventCallback {
		b.editMessage(ev.chatID, ev.messageID, fmt.Sprintf(msgYourAnswer, ev.messageText, verdict.Text))
	}
	return b.presentQuestion(ctx, ev, next)
}

func (b *Bot) handleEmail(ctx context.Context, ev event, st session.WaitingForEmail) error {
	email, err := b.taking.SubmitEmail(ctx, ev.userID, ev.text)
	if errors.Is(err, quiz.ErrInvalidEmail) {
		b.sendMessage(ev.chatID, msgInvalidEmail)
		return nil
	}
	if err != nil {
		return err
	}

	log.Printf("[%s] Winner %d of attempt %d left email %s", ev.id, ev.userID, st.AttemptID, email)
	b.sessions.Clear(ev.key())
	b.sendMessage(ev.chatID, msgEmailSaved)
	return nil
}
