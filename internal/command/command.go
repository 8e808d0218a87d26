// Package command maps command names to handlers taking JSON arguments,
// so every transport dispatches the same way.
package command

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// Handler runs one command. The result is encoded as JSON by the transport.
type Handler func(ctx context.Context, args json.RawMessage) (any, error)

var ErrUnknownCommand = errors.New("unknown command")

// ArgumentError reports arguments that could not be decoded.
type ArgumentError struct {
	Command string
	Err     error
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid arguments for %s: %v", e.Command, e.Err)
}

func (e *ArgumentError) Unwrap() error { return e.Err }

// Registry is filled once at startup and read concurrently afterwards.
type Registry struct {
	handlers map[string]Handler
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register adds a handler. Registering a name twice is a programming error.
func (r *Registry) Register(name string, h Handler) {
	if _, dup := r.handlers[name]; dup {
		panic("command: duplicate registration of " + name)
	}
	r.handlers[name] = h
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) Invoke(ctx context.Context, name string, args json.RawMessage) (any, error) {
	h, ok := r.handlers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	return h(ctx, args)
}

// Bind adapts a typed function into a Handler. Empty or null args decode to the zero T.
func Bind[T any](name string, fn func(ctx context.Context, args T) (any, error)) Handler {
	return func(ctx context.Context, raw json.RawMessage) (any, error) {
		var args T
		if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) {
			if err := json.Unmarshal(trimmed, &args); err != nil {
				return nil, &ArgumentError{Command: name, Err: err}
			}
		}
		return fn(ctx, args)
	}
}
