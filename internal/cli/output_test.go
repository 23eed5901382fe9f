package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitErrorMessage(t *testing.T) {
	err := NewExitError(ExitFailure, "item x not found")
	assert.Equal(t, "item x not found", err.Error())

	wrapped := WrapExitError(ExitCommandError, "opening database", errors.New("locked"))
	assert.Equal(t, "opening database: locked", wrapped.Error())
	assert.Equal(t, "locked", errors.Unwrap(wrapped).Error())
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "bad flag")))

	// Code survives wrapping through fmt.Errorf.
	inner := NewExitError(ExitFailure, "not found")
	assert.Equal(t, ExitFailure, GetExitCode(fmt.Errorf("context: %w", inner)))
}

func TestFormatterJSON(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "json", Writer: &buf}

	require.NoError(t, f.Success(map[string]string{"id": "abc"}))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "abc", data["id"])
}

func TestFormatterTextIgnoresPayload(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "text", Writer: &buf}

	require.NoError(t, f.SuccessText("hello\n", map[string]string{"id": "abc"}))
	assert.Equal(t, "hello\n", buf.String())
}
