package bot

import (
	"context"
	"fmt"
	"log"

	"github.com/korjavin/dailyquizbot/session"
)

// anyStep marks routes that apply regardless of the conversation step
const anyStep session.Step = -1

type handlerFunc func(ctx context.Context, ev event, st session.State) error

type routeKey struct {
	step session.Step
	kind eventKind
	name string
}

// on adapts a handler that expects one concrete state variant
func on[S session.State](fn func(ctx context.Context, ev event, st S) error) handlerFunc {
	return func(ctx context.Context, ev event, st session.State) error {
		s, ok := st.(S)
		if !ok {
			return fmt.Errorf("state %T does not match handler", st)
		}
		return fn(ctx, ev, s)
	}
}

// stateless adapts a handler that ignores the current state
func stateless(fn func(ctx context.Context, ev event) error) handlerFunc {
	return func(ctx context.Context, ev event, _ session.State) error {
		return fn(ctx, ev)
	}
}

func (b *Bot) buildRoutes() map[routeKey]handlerFunc {
	r := map[routeKey]handlerFunc{}

	command := func(step session.Step, name string, h handlerFunc) {
		r[routeKey{step: step, kind: eventCommand, name: name}] = h
	}
	callback := func(step session.Step, ns string, h handlerFunc) {
		r[routeKey{step: step, kind: eventCallback, name: ns}] = h
	}
	text := func(step session.Step, h handlerFunc) {
		r[routeKey{step: step, kind: eventText}] = h
	}

	// Commands available from any step
	command(anyStep, "start", stateless(b.handleStart))
	command(anyStep, "help", stateless(b.handleHelp))
	command(anyStep, "quiz", stateless(b.handleQuizStart))
	command(anyStep, "cancel", stateless(b.handleCancel))
	command(anyStep, "add_quiz", b.requireAdmin(stateless(b.handleAddQuiz)))
	command(anyStep, "activate_quiz", b.requireAdmin(stateless(b.handleActivateList)))
	command(anyStep, "deactivate_quiz", b.requireAdmin(stateless(b.handleDeactivateList)))
	command(anyStep, "delete_quiz", b.requireAdmin(stateless(b.handleDeleteList)))
	command(anyStep, "list_quizzes", b.requireAdmin(stateless(b.handleListQuizzes)))
	command(anyStep, "add_admin", b.requireAdmin(stateless(b.handleAddAdmin)))
	command(anyStep, "remove_admin", b.requireAdmin(stateless(b.handleRemoveAdmin)))
	command(anyStep, "list_admins", b.requireAdmin(stateless(b.handleListAdmins)))
	command(session.StepAwaitingAnswerOptions, "done", b.requireAdmin(on(b.handleDone)))

	// Incremental authoring
	text(session.StepAwaitingQuizTitle, b.requireAdmin(stateless(b.handleQuizTitle)))
	text(session.StepAwaitingQuestionText, b.requireAdmin(on(b.handleQuestionText)))
	text(session.StepAwaitingAnswerOptions, b.requireAdmin(on(b.handleAnswerOption)))
	callback(session.StepConfirmingContinuation, nsConfirm, b.requireAdmin(on(b.handleContinuation)))

	// Bulk authoring
	text(session.StepAwaitingQuizBlock, b.requireAdmin(stateless(b.handleQuizBlock)))

	// Quiz management
	callback(anyStep, nsAdmin, b.requireAdmin(stateless(b.handleAdminButton)))
	callback(anyStep, nsActivate, b.requireAdmin(stateless(b.handleActivate)))
	callback(anyStep, nsDeactivate, b.requireAdmin(stateless(b.handleDeactivate)))
	callback(anyStep, nsDelete, b.requireAdmin(stateless(b.handleDeleteSelect)))
	callback(session.StepConfirmingDelete, nsConfirm, b.requireAdmin(on(b.handleDeleteConfirm)))

	// Quiz taking
	callback(anyStep, nsQuiz, stateless(b.handleQuizStart))
	callback(session.StepAnsweringQuestions, nsAnswer, on(b.handleChoiceAnswer))
	text(session.StepAnsweringQuestions, on(b.handleTextAnswer))
	text(session.StepWaitingForEmail, on(b.handleEmail))

	return r
}

// route finds the handler for an event: exact step first, then any step,
// then the fallback for the event kind.
func (b *Bot) route(step session.Step, ev event) handlerFunc {
	if h, ok := b.routes[routeKey{step: step, kind: ev.kind, name: ev.name}]; ok {
		return h
	}
	if h, ok := b.routes[routeKey{step: anyStep, kind: ev.kind, name: ev.name}]; ok {
		return h
	}

	switch ev.kind {
	case eventCommand:
		return stateless(b.handleUnknownCommand)
	case eventCallback:
		return stateless(b.handleStaleCallback)
	default:
		return stateless(b.handleDefaultText)
	}
}

// requireAdmin rejects the event unless the sender is an admin
func (b *Bot) requireAdmin(next handlerFunc) handlerFunc {
	return func(ctx context.Context, ev event, st session.State) error {
		ok, err := b.admins.IsAdmin(ctx, ev.username)
		if err != nil {
			return fmt.Errorf("failed to check admin %q: %w", ev.username, err)
		}
		if !ok {
			log.Printf("[%s] Rejected admin action from %s (ID: %d)", ev.id, ev.username, ev.userID)
			b.sendMessage(ev.chatID, msgNotAdmin)
			return nil
		}
		return next(ctx, ev, st)
	}
}

func (b *Bot) isAdmin(ctx context.Context, ev event) (bool, error) {
	ok, err := b.admins.IsAdmin(ctx, ev.username)
	if err != nil {
		return false, fmt.Errorf("failed to check admin %q: %w", ev.username, err)
	}
	return ok, nil
}

func (b *Bot) handleUnknownCommand(_ context.Context, ev event) error {
	b.sendMessage(ev.chatID, msgUnknownCommand)
	return nil
}

func (b *Bot) handleStaleCallback(_ context.Context, ev event) error {
	b.sendMessage(ev.chatID, msgStaleButton)
	return nil
}

func (b *Bot) handleDefaultText(ctx context.Context, ev event) error {
	admin, err := b.isAdmin(ctx, ev)
	if err != nil {
		return err
	}
	if admin {
		b.sendKeyboard(ev.chatID, msgAdminDefault, adminMenuKeyboard())
		return nil
	}
	b.sendMessage(ev.chatID, msgUserDefault)
	return nil
}

func (b *Bot) handleStart(ctx context.Context, ev event) error {
	admin, err := b.isAdmin(ctx, ev)
	if err != nil {
		return err
	}
	if admin {
		b.sendKeyboard(ev.chatID, msgAdminWelcome, adminMenuKeyboard())
		return nil
	}
	b.sendKeyboard(ev.chatID, msgUserWelcome, userMenuKeyboard())
	return nil
}

func (b *Bot) handleHelp(ctx context.Context, ev event) error {
	admin, err := b.isAdmin(ctx, ev)
	if err != nil {
		return err
	}
	if admin {
		b.sendMessage(ev.chatID, msgAdminHelp)
		return nil
	}
	b.sendMessage(ev.chatID, msgUserHelp)
	return nil
}

// handleCancel drops whatever flow the chat is in
func (b *Bot) handleCancel(_ context.Context, ev event) error {
	b.sessions.Clear(ev.key())
	b.sendMessage(ev.chatID, msgCancelled)
	return nil
}
