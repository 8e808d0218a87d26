package command

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoArgs struct {
	Text string `json:"text"`
}

func newEchoRegistry() *Registry {
	reg := NewRegistry()
	reg.Register("echo", Bind("echo", func(_ context.Context, a echoArgs) (any, error) {
		return a.Text, nil
	}))
	reg.Register("ping", Bind("ping", func(_ context.Context, _ struct{}) (any, error) {
		return "pong", nil
	}))
	return reg
}

func TestInvoke(t *testing.T) {
	reg := newEchoRegistry()

	out, err := reg.Invoke(context.Background(), "echo", json.RawMessage(`{"text":"hi"}`))
	require.NoError(t, err)
	assert.Equal(t, "hi", out)

	for _, raw := range []string{"", " ", "null", "{}"} {
		out, err = reg.Invoke(context.Background(), "ping", json.RawMessage(raw))
		require.NoError(t, err, raw)
		assert.Equal(t, "pong", out)
	}
}

func TestInvokeUnknown(t *testing.T) {
	_, err := newEchoRegistry().Invoke(context.Background(), "nope", nil)
	assert.ErrorIs(t, err, ErrUnknownCommand)
}

func TestInvokeBadArgs(t *testing.T) {
	_, err := newEchoRegistry().Invoke(context.Background(), "echo", json.RawMessage(`{"text":5}`))
	var argErr *ArgumentError
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, "echo", argErr.Command)
}

func TestNamesSorted(t *testing.T) {
	assert.Equal(t, []string{"echo", "ping"}, newEchoRegistry().Names())
}

func TestRegisterDuplicatePanics(t *testing.T) {
	reg := newEchoRegistry()
	assert.Panics(t, func() {
		reg.Register("echo", func(context.Context, json.RawMessage) (any, error) { return nil, nil })
	})
}
