package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPressCmd_Use(t *testing.T) {
	assert.Equal(t, "press [token...]", pressCmd.Use)
	assert.NotNil(t, pressCmd.Flags().Lookup("trace"))
}

func TestPressCmd_Evaluates(t *testing.T) {
	setupServices(t)

	out, _, err := execute(t, nil, "press", "6", "*", "7", "=")

	require.NoError(t, err)
	assert.Equal(t, "42\n", out)
}

func TestPressCmd_FailureClearsBuffer(t *testing.T) {
	setupServices(t)

	out, _, err := execute(t, nil, "press", "1", "0", "/", "0", "=")

	require.NoError(t, err)
	assert.Equal(t, "  [Cannot divide by zero]\n", out)
}

func TestPressCmd_EmptyExpressionKeepsBuffer(t *testing.T) {
	setupServices(t)

	out, _, err := execute(t, nil, "press", "=")

	require.NoError(t, err)
	assert.Equal(t, "  [Empty expression]\n", out)
}

func TestPressCmd_Aliases(t *testing.T) {
	setupServices(t)

	out, _, err := execute(t, nil, "press", "1", "2", "backspace", "00")

	require.NoError(t, err)
	assert.Equal(t, "100\n", out)
}

func TestPressCmd_Trace(t *testing.T) {
	setupServices(t)

	out, _, err := execute(t, nil, "press", "--trace", "5", "%", "+", "1", "=")

	require.NoError(t, err)
	assert.Equal(t, "5    5\n%    5%\n+    5%+\n1    5%+1\n=    1.05\n", out)
}

func TestPressCmd_SessionIsClosed(t *testing.T) {
	setupServices(t)

	_, _, err := execute(t, nil, "press", "1")
	require.NoError(t, err)

	ids, err := sessionService.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestPressCmd_RequiresTokens(t *testing.T) {
	setupServices(t)

	_, _, err := execute(t, nil, "press")

	assert.Error(t, err)
}

func TestPressCmd_NoService(t *testing.T) {
	setupServices(t)
	SetServices(nil)

	_, _, err := execute(t, nil, "press", "1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "session service not configured")
}
