package trivia

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed quiz.yaml
var quizYAML []byte

// Question is a multiple choice question asked by the extension.
type Question struct {
	Number  int      `yaml:"number"`
	Prompt  string   `yaml:"prompt"`
	Options []string `yaml:"options"`
}

// Text renders the question the way it is shown to the user.
func (q Question) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question %d:\n%s", q.Number, q.Prompt)
	for i, o := range q.Options {
		fmt.Fprintf(&b, "\n%d. %s", i+1, o)
	}
	return b.String()
}

// Quiz is the whole content of the trivia.
type Quiz struct {
	Choices   []string          `yaml:"choices"`
	Reprompt  string            `yaml:"reprompt"`
	Questions []Question        `yaml:"questions"`
	Key       map[string]string `yaml:"key"`
	Verdicts  []string          `yaml:"verdicts"`
}

func parseQuiz(data []byte) (*Quiz, error) {
	var q Quiz
	if err := yaml.Unmarshal(data, &q); err != nil {
		return nil, fmt.Errorf("decode quiz: %w", err)
	}
	if len(q.Choices) == 0 {
		return nil, fmt.Errorf("quiz has no choices")
	}
	if len(q.Questions) != 2 {
		return nil, fmt.Errorf("quiz must have 2 extension questions, got %d", len(q.Questions))
	}
	for _, s := range []string{SlotAnswer1, SlotAnswer2, SlotAnswer3} {
		if _, ok := q.Key[s]; !ok {
			return nil, fmt.Errorf("quiz key misses %s", s)
		}
	}
	if len(q.Verdicts) != len(q.Key)+1 {
		return nil, fmt.Errorf("quiz needs %d verdicts, got %d", len(q.Key)+1, len(q.Verdicts))
	}
	return &q, nil
}

func mustParseQuiz(data []byte) *Quiz {
	q, err := parseQuiz(data)
	if err != nil {
		panic(err)
	}
	return q
}

// IsChoice reports whether s is one of the accepted options.
func (q *Quiz) IsChoice(s string) bool {
	for _, c := range q.Choices {
		if s == c {
			return true
		}
	}
	return false
}

// Grade counts slots matching the answer key.
func (q *Quiz) Grade(slots map[string]string) int {
	correct := 0
	for slot, want := range q.Key {
		if slots[slot] == want {
			correct++
		}
	}
	return correct
}

// Verdict is the closing message for a number of correct answers.
func (q *Quiz) Verdict(correct int) string {
	return fmt.Sprintf("You got %d/%d answers right.\n%s", correct, len(q.Key), q.Verdicts[correct])
}
