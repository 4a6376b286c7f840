package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "without cause",
			err:  Input("source is required"),
			want: "[INPUT_ERROR] source is required",
		},
		{
			name: "with cause",
			err:  Network("request failed", stderrors.New("connection refused")),
			want: "[NETWORK_ERROR] request failed: connection refused",
		},
		{
			name: "formatted wrap",
			err:  Wrapf(TypeNetwork, stderrors.New("unexpected EOF"), "read response body from %s", "https://seats.aero/api/routes"),
			want: "[NETWORK_ERROR] read response body from https://seats.aero/api/routes: unexpected EOF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestUpstreamCarriesStatus(t *testing.T) {
	err := Upstream(503, "https://seats.aero/api/routes")

	assert.True(t, err.Is(TypeUpstream))
	assert.Equal(t, 503, err.Context["status_code"])
	assert.Equal(t, "https://seats.aero/api/routes", err.Context["url"])
}

func TestIsTypeWalksChain(t *testing.T) {
	inner := Parsing("decode availability", stderrors.New("unexpected EOF"))
	wrapped := fmt.Errorf("availability: %w", inner)

	assert.True(t, IsType(wrapped, TypeParsing))
	assert.False(t, IsType(wrapped, TypeNetwork))
	assert.False(t, IsType(stderrors.New("plain"), TypeParsing))
	assert.False(t, IsType(nil, TypeParsing))
}

func TestAsAndTypeOf(t *testing.T) {
	wrapped := fmt.Errorf("routes: %w", Upstream(404, "u"))

	e, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, TypeUpstream, e.Type)
	assert.Equal(t, TypeUpstream, TypeOf(wrapped))
	assert.Equal(t, TypeInternal, TypeOf(stderrors.New("plain")))
}

func TestUnwrapExposesCause(t *testing.T) {
	cause := stderrors.New("boom")
	err := Internal("failed", cause)

	assert.ErrorIs(t, err, cause)
}
