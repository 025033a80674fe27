package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// QuestionKind selects how a question is answered and graded.
type QuestionKind string

const (
	MultipleChoiceQuestion QuestionKind = "multiple_choice"
	TrueFalseQuestion      QuestionKind = "true_false"
	ShortAnswerQuestion    QuestionKind = "short_answer"
)

// Valid reports whether k is one of the known question kinds.
func (k QuestionKind) Valid() bool {
	switch k {
	case MultipleChoiceQuestion, TrueFalseQuestion, ShortAnswerQuestion:
		return true
	}
	return false
}

// Answer is a tagged union over the three question kinds. Only the field
// matching Kind is meaningful; build values with MultipleChoice, TrueFalse
// or ShortAnswer.
type Answer struct {
	Kind   QuestionKind
	Choice int
	Value  bool
	Text   string
}

// MultipleChoice answers a multiple_choice question with an option index.
func MultipleChoice(index int) Answer {
	return Answer{Kind: MultipleChoiceQuestion, Choice: index}
}

// TrueFalse answers a true_false question.
func TrueFalse(v bool) Answer {
	return Answer{Kind: TrueFalseQuestion, Value: v}
}

// ShortAnswer answers a short_answer question with free text.
func ShortAnswer(s string) Answer {
	return Answer{Kind: ShortAnswerQuestion, Text: s}
}

// Raw returns the answer payload as a plain value (int, bool or string).
func (a Answer) Raw() any {
	switch a.Kind {
	case MultipleChoiceQuestion:
		return a.Choice
	case TrueFalseQuestion:
		return a.Value
	case ShortAnswerQuestion:
		return a.Text
	}
	return nil
}

// ParseAnswer decodes a raw JSON payload into an answer of the given kind.
func ParseAnswer(kind QuestionKind, raw json.RawMessage) (Answer, error) {
	switch kind {
	case MultipleChoiceQuestion:
		var i int
		if err := json.Unmarshal(raw, &i); err != nil {
			return Answer{}, fmt.Errorf("multiple_choice answer must be an option index: %w", err)
		}
		return MultipleChoice(i), nil
	case TrueFalseQuestion:
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return Answer{}, fmt.Errorf("true_false answer must be a boolean: %w", err)
		}
		return TrueFalse(b), nil
	case ShortAnswerQuestion:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return Answer{}, fmt.Errorf("short_answer answer must be a string: %w", err)
		}
		return ShortAnswer(s), nil
	}
	return Answer{}, fmt.Errorf("unknown question type %q", kind)
}

// Question is a single quiz item.
type Question struct {
	ID            int
	Kind          QuestionKind
	Prompt        string
	Options       []string
	CorrectAnswer Answer
}

// Grade reports whether a is a correct answer to q. Answers of a different
// variant than the question are never correct.
func (q Question) Grade(a Answer) bool {
	if a.Kind != q.Kind || q.CorrectAnswer.Kind != q.Kind {
		return false
	}
	switch q.Kind {
	case MultipleChoiceQuestion:
		return a.Choice == q.CorrectAnswer.Choice
	case TrueFalseQuestion:
		return a.Value == q.CorrectAnswer.Value
	case ShortAnswerQuestion:
		return NormalizeShortAnswer(a.Text) == NormalizeShortAnswer(q.CorrectAnswer.Text)
	}
	return false
}

// Accepts reports whether a is a well-formed answer for q, regardless of
// correctness.
func (q Question) Accepts(a Answer) bool {
	if a.Kind != q.Kind {
		return false
	}
	if q.Kind == MultipleChoiceQuestion && len(q.Options) > 0 {
		return a.Choice >= 0 && a.Choice < len(q.Options)
	}
	return true
}

// NormalizeShortAnswer trims surrounding whitespace and case-folds s.
func NormalizeShortAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

type questionJSON struct {
	ID            int             `json:"id"`
	Kind          QuestionKind    `json:"type"`
	Prompt        string          `json:"question"`
	Options       []string        `json:"options,omitempty"`
	CorrectAnswer json.RawMessage `json:"correct_answer"`
}

// MarshalJSON encodes the question in the catalog wire shape, where
// correct_answer is an index, a boolean or a string depending on type.
func (q Question) MarshalJSON() ([]byte, error) {
	correct, err := json.Marshal(q.CorrectAnswer.Raw())
	if err != nil {
		return nil, err
	}
	return json.Marshal(questionJSON{
		ID:            q.ID,
		Kind:          q.Kind,
		Prompt:        q.Prompt,
		Options:       q.Options,
		CorrectAnswer: correct,
	})
}

// UnmarshalJSON decodes the catalog wire shape.
func (q *Question) UnmarshalJSON(data []byte) error {
	var raw questionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	correct, err := ParseAnswer(raw.Kind, raw.CorrectAnswer)
	if err != nil {
		return fmt.Errorf("question %d: %w", raw.ID, err)
	}
	*q = Question{
		ID:            raw.ID,
		Kind:          raw.Kind,
		Prompt:        raw.Prompt,
		Options:       raw.Options,
		CorrectAnswer: correct,
	}
	return nil
}
