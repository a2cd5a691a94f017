package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setVersion(t *testing.T, v string) {
	t.Helper()
	original := version
	version = v
	t.Cleanup(func() { version = original })
}

func TestVersionCmd_Use(t *testing.T) {
	assert.Equal(t, "version", versionCmd.Use)
}

func TestVersionCmd_PrintsVersion(t *testing.T) {
	setVersion(t, "1.2.0")

	out, err := executeCommand(t, "version")
	require.NoError(t, err)

	assert.Contains(t, out, "docket version 1.2.0\n")
}

func TestVersionCmd_DevByDefault(t *testing.T) {
	setVersion(t, "dev")

	out, err := executeCommand(t, "version")
	require.NoError(t, err)

	assert.Contains(t, out, "docket version dev\n")
}

func TestVersionCmd_RejectsArguments(t *testing.T) {
	_, err := executeCommand(t, "version", "extra")
	require.Error(t, err)
}
