// Package player drives the trivia commands the way the orchestrator does:
// store the answer in its slot, call the command, carry the returned fsm forward.
package player

import (
	"context"
	"fmt"

	"github.com/wurt83ow/trivia-ext/internal/models"
	"github.com/wurt83ow/trivia-ext/internal/trivia"
)

// Invoker executes one extension command.
type Invoker interface {
	Invoke(ctx context.Context, req *models.Request) (*models.Response, error)
}

// InvokerFunc adapts a function to Invoker.
type InvokerFunc func(ctx context.Context, req *models.Request) (*models.Response, error)

func (f InvokerFunc) Invoke(ctx context.Context, req *models.Request) (*models.Response, error) {
	return f(ctx, req)
}

type step struct {
	command string
	slot    string
	state   string
}

var steps = []step{
	{trivia.CommandValidateAnswer1, trivia.SlotAnswer1, trivia.StateQuestion1},
	{trivia.CommandValidateAnswer2, trivia.SlotAnswer2, trivia.StateQuestion2},
	{trivia.CommandScore, trivia.SlotAnswer3, trivia.StateQuestion3},
}

// Domain maps the quiz state names onto themselves, the orchestrator would use its own tags.
var Domain = map[string]string{
	trivia.StateQuestion1: trivia.StateQuestion1,
	trivia.StateQuestion2: trivia.StateQuestion2,
	trivia.StateQuestion3: trivia.StateQuestion3,
}

// Play answers the three questions in order and returns the text of every reply.
func Play(ctx context.Context, inv Invoker, sender string, answers []string) ([]string, error) {
	if len(answers) != len(steps) {
		return nil, fmt.Errorf("need %d answers, got %d", len(steps), len(answers))
	}

	fsm := &models.FSM{State: trivia.StateQuestion1, Slots: map[string]string{}}
	texts := make([]string, 0, len(steps))

	for i, s := range steps {
		fsm.State = s.state
		fsm.Slots[s.slot] = answers[i]

		res, err := inv.Invoke(ctx, &models.Request{
			Command:  s.command,
			FSM:      fsm,
			Domain:   Domain,
			Question: &models.Question{Sender: sender, Text: answers[i]},
		})
		if err != nil {
			return texts, fmt.Errorf("%s: %w", s.command, err)
		}
		for _, a := range res.Answers {
			texts = append(texts, a.Text)
		}
		if res.FSM != nil {
			fsm = res.FSM
			if fsm.Slots == nil {
				fsm.Slots = map[string]string{}
			}
		}
	}
	return texts, nil
}
