package extension_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wurt83ow/trivia-ext/internal/extension"
	"github.com/wurt83ow/trivia-ext/internal/models"
)

func echo(text string) extension.Handler {
	return func(req *models.Request) *models.Response {
		return &models.Response{FSM: req.FSM, Answers: []models.Answer{{Text: text}}}
	}
}

func TestDispatcher_Commands(t *testing.T) {
	d := extension.New([]extension.Command{
		{Name: "b", Handler: echo("b")},
		{Name: "a", Handler: echo("a")},
		{Name: "c", Handler: echo("c")},
	})

	assert.Equal(t, []string{"b", "a", "c"}, d.Commands())

	// callers can not mutate the table through the returned slice
	names := d.Commands()
	names[0] = "zzz"
	assert.Equal(t, []string{"b", "a", "c"}, d.Commands())
}

func TestDispatcher_Invoke(t *testing.T) {
	d := extension.New([]extension.Command{{Name: "greet", Handler: echo("hello")}})

	req := &models.Request{Command: "greet", FSM: &models.FSM{State: "s"}}
	res, err := d.Invoke(context.Background(), "greet", req)
	require.NoError(t, err)
	assert.Equal(t, "s", res.FSM.State)
	assert.Equal(t, []models.Answer{{Text: "hello"}}, res.Answers)

	_, err = d.Invoke(context.Background(), "nope", req)
	assert.ErrorIs(t, err, extension.ErrUnknownCommand)
}

func TestDispatcher_Has(t *testing.T) {
	d := extension.New([]extension.Command{{Name: "greet", Handler: echo("hello")}})

	assert.True(t, d.Has("greet"))
	assert.False(t, d.Has("nope"))
	assert.False(t, d.Has(""))
}

func TestDispatcher_Observer(t *testing.T) {
	var seen []string
	d := extension.New(
		[]extension.Command{{Name: "greet", Handler: echo("hello")}},
		extension.WithObserver(func(_ context.Context, command string, _ *models.Request, res *models.Response) {
			seen = append(seen, command+":"+res.Answers[0].Text)
		}),
	)

	_, err := d.Invoke(context.Background(), "greet", &models.Request{FSM: &models.FSM{}})
	require.NoError(t, err)
	_, err = d.Invoke(context.Background(), "missing", &models.Request{FSM: &models.FSM{}})
	require.Error(t, err)

	assert.Equal(t, []string{"greet:hello"}, seen)
}

func TestDispatcher_DuplicatePanics(t *testing.T) {
	assert.Panics(t, func() {
		extension.New([]extension.Command{
			{Name: "x", Handler: echo("1")},
			{Name: "x", Handler: echo("2")},
		})
	})
}
