package quiz

import (
	"regexp"
	"strings"

	"github.com/korjavin/dailyquizbot/models"
)

const (
	titlePrefix     = "Название квиза:"
	questionsMarker = "Вопросы:"
	answerPrefix    = "Ответ:"
)

var questionLine = regexp.MustCompile(`^(\d{1,3})\.\s*(.*)$`)

// QuizDraft is a parsed bulk quiz definition
type QuizDraft struct {
	Title     string
	Questions []models.QuestionDraft
}

// ParseQuizBlock parses a quiz written as:
//
//	Название квиза: <title>
//	Вопросы:
//	1. <question text>
//	Ответ: <answer text>
//
// Lines that match nothing continue the preceding question or answer.
// Every question needs exactly one answer, stored as the correct one.
func ParseQuizBlock(text string) (*QuizDraft, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	draft := &QuizDraft{}
	var (
		current      *models.QuestionDraft
		currentLine  int
		seenTitle    bool
		seenMarker   bool
		inAnswerText bool
	)

	flush := func() error {
		if current == nil {
			return nil
		}
		if len(current.Answers) == 0 {
			return &ParseError{Line: currentLine, Reason: "question has no \"" + answerPrefix + "\" line"}
		}
		draft.Questions = append(draft.Questions, *current)
		current = nil
		return nil
	}

	for i, raw := range lines {
		lineNo := i + 1
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		switch {
		case !seenTitle:
			if !strings.HasPrefix(line, titlePrefix) {
				return nil, &ParseError{Line: lineNo, Reason: "expected \"" + titlePrefix + " <title>\""}
			}
			draft.Title = strings.TrimSpace(strings.TrimPrefix(line, titlePrefix))
			if draft.Title == "" {
				return nil, &ParseError{Line: lineNo, Reason: "quiz title is empty"}
			}
			seenTitle = true

		case !seenMarker:
			if line != questionsMarker {
				return nil, &ParseError{Line: lineNo, Reason: "expected \"" + questionsMarker + "\""}
			}
			seenMarker = true

		case questionLine.MatchString(line):
			if err := flush(); err != nil {
				return nil, err
			}
			m := questionLine.FindStringSubmatch(line)
			qText := strings.TrimSpace(m[2])
			if qText == "" {
				return nil, &ParseError{Line: lineNo, Reason: "question " + m[1] + " has no text"}
			}
			current = &models.QuestionDraft{Text: qText}
			currentLine = lineNo
			inAnswerText = false

		case strings.HasPrefix(line, answerPrefix):
			if current == nil {
				return nil, &ParseError{Line: lineNo, Reason: "answer without a question"}
			}
			if len(current.Answers) > 0 {
				return nil, &ParseError{Line: lineNo, Reason: "question already has an answer"}
			}
			answer := strings.TrimSpace(strings.TrimPrefix(line, answerPrefix))
			if answer == "" {
				return nil, &ParseError{Line: lineNo, Reason: "answer is empty"}
			}
			current.Answers = []models.Answer{{Text: answer, IsCorrect: true}}
			inAnswerText = true

		default:
			if current == nil {
				return nil, &ParseError{Line: lineNo, Reason: "text outside of a question"}
			}
			if inAnswerText {
				// Typed answers are single line, so a wrapped answer is joined with spaces
				current.Answers[0].Text += " " + line
			} else {
				current.Text += "\n" + line
			}
		}
	}

	if !seenTitle {
		return nil, &ParseError{Reason: "quiz definition is empty"}
	}
	if !seenMarker {
		return nil, &ParseError{Reason: "missing \"" + questionsMarker + "\" section"}
	}
	// the last question has no following number line to close it
	if err := flush(); err != nil {
		return nil, err
	}
	if len(draft.Questions) == 0 {
		return nil, &ParseError{Reason: "no questions found"}
	}

	return draft, nil
}
