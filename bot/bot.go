package bot

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/korjavin/dailyquizbot/config"
	"github.com/korjavin/dailyquizbot/database"
	"github.com/korjavin/dailyquizbot/identity"
	"github.com/korjavin/dailyquizbot/quiz"
	"github.com/korjavin/dailyquizbot/session"
)

// handlerTimeout bounds the storage work of a single update
const handlerTimeout = 30 * time.Second

// API is the part of the Telegram client the bot uses
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Bot represents the Telegram bot
type Bot struct {
	api       API
	admins    *identity.Checker
	taking    *quiz.Taking
	authoring *quiz.Authoring
	sessions  *session.Store
	routes    map[routeKey]handlerFunc
	workers   int
}

// New creates a new bot instance
func New(cfg *config.Config, db *database.DB) (*Bot, error) {
	botAPI, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}
	botAPI.Debug = cfg.Debug

	log.Printf("Authorized on account %s", botAPI.Self.UserName)
	log.Printf("Authoring mode: %s, answer mode: %s", cfg.AuthoringMode, cfg.AnswerMode)

	checker := quiz.NewChecker(cfg.AnswerMode, db)
	return newBot(
		botAPI,
		identity.NewChecker(db),
		quiz.NewTaking(db, checker, nil),
		quiz.NewAuthoring(db, cfg.AuthoringMode, cfg.QuizDuration, nil),
		session.NewStore(),
		cfg.Workers,
	), nil
}

func newBot(api API, admins *identity.Checker, taking *quiz.Taking, authoring *quiz.Authoring, sessions *session.Store, workers int) *Bot {
	if workers < 1 {
		workers = 1
	}
	b := &Bot{
		api:       api,
		admins:    admins,
		taking:    taking,
		authoring: authoring,
		sessions:  sessions,
		workers:   workers,
	}
	b.routes = b.buildRoutes()
	return b
}

// Start listens for updates until ctx is cancelled
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	log.Printf("Bot started with %d workers", b.workers)

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	b.run(ctx, updates)
	log.Printf("Bot stopped")
}

// run shards updates by chat so that events of one conversation are
// handled in arrival order, while different chats proceed in parallel.
func (b *Bot) run(ctx context.Context, updates <-chan tgbotapi.Update) {
	queues := make([]chan tgbotapi.Update, b.workers)
	var wg sync.WaitGroup
	for i := range queues {
		queues[i] = make(chan tgbotapi.Update, 16)
		wg.Add(1)
		go func(q <-chan tgbotapi.Update) {
			defer wg.Done()
			for update := range q {
				b.handleUpdate(update)
			}
		}(queues[i])
	}

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case update, ok := <-updates:
			if !ok {
				break loop
			}
			chatID := updateChatID(update)
			select {
			case queues[uint64(chatID)%uint64(len(queues))] <- update:
			case <-ctx.Done():
				break loop
			}
		}
	}

	for _, q := range queues {
		close(q)
	}
	wg.Wait()
	log.Printf("Workers stopped, %d conversations were in progress", b.sessions.Len())
}

type eventKind int

const (
	eventCommand eventKind = iota
	eventText
	eventCallback
)

func (k eventKind) String() string {
	switch k {
	case eventCommand:
		return "command"
	case eventText:
		return "text"
	case eventCallback:
		return "callback"
	}
	return "unknown"
}

// event is a normalized incoming update
//
// text holds the message text, the command arguments or the callback data.
type event struct {
	id          string
	kind        eventKind
	name        string // command name or callback namespace
	chatID      int64
	userID      int64
	username    string
	text        string
	callbackID  string
	messageID   int
	messageText string
}

// key identifies the sender's conversation in this chat
func (ev event) key() session.Key {
	return session.Key{ChatID: ev.chatID, UserID: ev.userID}
}

func updateChatID(u tgbotapi.Update) int64 {
	switch {
	case u.Message != nil:
		return u.Message.Chat.ID
	case u.CallbackQuery != nil && u.CallbackQuery.Message != nil:
		return u.CallbackQuery.Message.Chat.ID
	case u.CallbackQuery != nil && u.CallbackQuery.From != nil:
		return u.CallbackQuery.From.ID
	}
	return 0
}

func newEvent(u tgbotapi.Update) (event, bool) {
	ev := event{id: uuid.NewString(), chatID: updateChatID(u)}

	switch {
	case u.Message != nil:
		msg := u.Message
		if msg.From == nil {
			return ev, false
		}
		ev.userID = msg.From.ID
		ev.username = msg.From.UserName
		ev.messageID = msg.MessageID
		if msg.IsCommand() {
			ev.kind = eventCommand
			ev.name = strings.ToLower(msg.Command())
			ev.text = msg.CommandArguments()
		} else {
			ev.kind = eventText
			ev.text = msg.Text
		}
	case u.CallbackQuery != nil:
		cb := u.CallbackQuery
		if cb.From == nil {
			return ev, false
		}
		ev.kind = eventCallback
		ev.userID = cb.From.ID
		ev.username = cb.From.UserName
		ev.callbackID = cb.ID
		ev.text = cb.Data
		ev.name = callbackNamespace(cb.Data)
		if cb.Message != nil {
			ev.messageID = cb.Message.MessageID
			ev.messageText = cb.Message.Text
		}
	default:
		return ev, false
	}
	return ev, true
}

// callbackNamespace returns the part of the callback data before the first "_"
func callbackNamespace(data string) string {
	ns, _, _ := strings.Cut(data, "_")
	return ns
}

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	ev, ok := newEvent(update)
	if !ok {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("[%s] Recovered from panic in handler: %v", ev.id, r)
			b.sessions.Clear(ev.key())
			b.sendMessage(ev.chatID, msgStorageError)
		}
	}()

	st, _ := b.sessions.Get(ev.key())
	step := session.StepIdle
	if st != nil {
		step = st.Step()
	}
	log.Printf("[%s] %s %q from %s (ID: %d) in step %s: %s",
		ev.id, ev.kind, ev.name, ev.username, ev.userID, step, ev.text)

	// Acknowledge the callback first to stop the client spinner
	if ev.kind == eventCallback {
		b.sendCallbackResponse(ev.callbackID, "")
	}

	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	h := b.route(step, ev)
	if err := h(ctx, ev, st); err != nil {
		log.Printf("[%s] Error handling %s: %v", ev.id, ev.kind, err)
		b.sessions.Clear(ev.key())
		b.sendMessage(ev.chatID, msgStorageError)
	}
}

// sendMessage sends a plain text message
func (b *Bot) sendMessage(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}

// sendKeyboard sends a message with an inline keyboard attached
func (b *Bot) sendKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	b.send(msg)
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}

// sendCallbackResponse answers a callback query
func (b *Bot) sendCallbackResponse(callbackID, text string) {
	callback := tgbotapi.NewCallback(callbackID, text)
	if _, err := b.api.Request(callback); err != nil {
		log.Printf("Error sending callback response: %v", err)
	}
}

// editMessage replaces the text of a sent message, dropping its keyboard
func (b *Bot) editMessage(chatID int64, messageID int, newText string) {
	if messageID == 0 {
		return
	}
	edit := tgbotapi.NewEditMessageText(chatID, messageID, newText)
	if _, err := b.api.Send(edit); err != nil {
		log.Printf("Error editing message: %v", err)
	}
}
