// Package extension holds the command table of an extension service.
package extension

import (
	"context"
	"errors"
	"fmt"

	"github.com/wurt83ow/trivia-ext/internal/models"
)

// ErrUnknownCommand is returned when a command is not registered.
var ErrUnknownCommand = errors.New("unknown command")

// Handler executes one command. Handlers do not fail: a wrong answer is still a response.
type Handler func(req *models.Request) *models.Response

// Command binds a name to its handler.
type Command struct {
	Name    string
	Handler Handler
}

// Observer is told about every successful invocation.
type Observer func(ctx context.Context, command string, req *models.Request, res *models.Response)

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithObserver registers an observer. Observers run in registration order.
func WithObserver(o Observer) Option {
	return func(d *Dispatcher) {
		d.observers = append(d.observers, o)
	}
}

// Dispatcher maps command names to handlers. It is immutable once built.
type Dispatcher struct {
	names     []string
	handlers  map[string]Handler
	observers []Observer
}

// New builds a dispatcher. Registering the same name twice panics.
func New(cmds []Command, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		names:    make([]string, 0, len(cmds)),
		handlers: make(map[string]Handler, len(cmds)),
	}
	for _, c := range cmds {
		if _, ok := d.handlers[c.Name]; ok {
			panic(fmt.Sprintf("extension: command %q registered twice", c.Name))
		}
		d.names = append(d.names, c.Name)
		d.handlers[c.Name] = c.Handler
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Commands returns the registered names in registration order.
func (d *Dispatcher) Commands() []string {
	out := make([]string, len(d.names))
	copy(out, d.names)
	return out
}

// Has reports whether the command is registered.
func (d *Dispatcher) Has(command string) bool {
	_, ok := d.handlers[command]
	return ok
}

// Invoke runs the named command.
func (d *Dispatcher) Invoke(ctx context.Context, command string, req *models.Request) (*models.Response, error) {
	h, ok := d.handlers[command]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, command)
	}

	res := h(req)
	for _, o := range d.observers {
		o(ctx, command, req, res)
	}
	return res, nil
}
