package quiz

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/korjavin/dailyquizbot/database"
	"github.com/korjavin/dailyquizbot/models"
)

// AnswerMode selects how questions are presented and scored
type AnswerMode string

const (
	// ModeChoice shows answer buttons; input is the selected answer ID
	ModeChoice AnswerMode = "choice"
	// ModeText asks for a typed answer compared against the correct answer text
	ModeText AnswerMode = "text"
)

// ParseAnswerMode validates a configured answer mode
func ParseAnswerMode(s string) (AnswerMode, error) {
	switch m := AnswerMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeChoice, ModeText:
		return m, nil
	}
	return "", fmt.Errorf("unknown answer mode %q", s)
}

// Verdict is the outcome of checking one answer
type Verdict struct {
	Correct  bool
	AnswerID int64
	Text     string
}

// AnswerChecker decides whether user input answers a question correctly
type AnswerChecker interface {
	Mode() AnswerMode
	CheckAnswer(ctx context.Context, question models.Question, input string) (Verdict, error)
}

// NewChecker returns the checker for the given mode
func NewChecker(mode AnswerMode, lookup AnswerLookup) AnswerChecker {
	if mode == ModeText {
		return &TextChecker{lookup: lookup}
	}
	return &ChoiceChecker{lookup: lookup}
}

// ChoiceChecker scores a selected answer by its is_correct flag
type ChoiceChecker struct {
	lookup AnswerLookup
}

func (c *ChoiceChecker) Mode() AnswerMode { return ModeChoice }

// CheckAnswer resolves input as an answer ID of the question
func (c *ChoiceChecker) CheckAnswer(ctx context.Context, question models.Question, input string) (Verdict, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(input), 10, 64)
	if err != nil {
		return Verdict{}, ErrUnknownAnswer
	}

	answer, err := c.lookup.GetAnswer(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return Verdict{}, ErrUnknownAnswer
	}
	if err != nil {
		return Verdict{}, fmt.Errorf("failed to load answer %d: %w", id, err)
	}
	if answer.QuestionID != question.ID {
		return Verdict{}, ErrUnknownAnswer
	}

	return Verdict{Correct: answer.IsCorrect, AnswerID: answer.ID, Text: answer.Text}, nil
}

// TextChecker compares typed input with the correct answer, ignoring case and surrounding space
type TextChecker struct {
	lookup AnswerLookup
}

func (c *TextChecker) Mode() AnswerMode { return ModeText }

// CheckAnswer compares input with the question's correct answer text
func (c *TextChecker) CheckAnswer(ctx context.Context, question models.Question, input string) (Verdict, error) {
	answer, err := c.lookup.CorrectAnswer(ctx, question.ID)
	if errors.Is(err, database.ErrNotFound) {
		return Verdict{}, fmt.Errorf("question %d: %w", question.ID, ErrCorrectAnswerMissing)
	}
	if err != nil {
		return Verdict{}, fmt.Errorf("failed to load correct answer of question %d: %w", question.ID, err)
	}

	given := normalizeAnswer(input)
	return Verdict{
		Correct: given == normalizeAnswer(answer.Text),
		Text:    strings.TrimSpace(input),
	}, nil
}

func normalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
