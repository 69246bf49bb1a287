package editor

import (
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCommandOpener_Empty(t *testing.T) {
	_, err := NewCommandOpener("   ", nil)
	assert.Error(t, err)
}

func TestCommand_AppendsPathAsSingleArgument(t *testing.T) {
	o, err := NewCommandOpener("code -n --reuse-window", nil)
	require.NoError(t, err)

	path := filepath.Join("home", "me", "Projects", "C#", "my game")
	cmd := o.Command(path)

	assert.Equal(t, []string{"code", "-n", "--reuse-window", path}, cmd.Args)
}

func TestCommand_DoesNotShareArgs(t *testing.T) {
	o, err := NewCommandOpener("code -n", nil)
	require.NoError(t, err)

	first := o.Command("a")
	second := o.Command("b")
	assert.Equal(t, "a", first.Args[len(first.Args)-1])
	assert.Equal(t, "b", second.Args[len(second.Args)-1])
}

func TestOpen_StartsProcess(t *testing.T) {
	truePath, err := exec.LookPath("true")
	if err != nil {
		t.Skip("true not available")
	}
	o, err := NewCommandOpener(truePath, nil)
	require.NoError(t, err)

	assert.NoError(t, o.Open(t.TempDir()))
}

func TestOpen_MissingEditor(t *testing.T) {
	o, err := NewCommandOpener("thequest-no-such-editor-binary", nil)
	require.NoError(t, err)

	assert.Error(t, o.Open(t.TempDir()))
}

func TestOpen_EmptyPath(t *testing.T) {
	o, err := NewCommandOpener("code", nil)
	require.NoError(t, err)

	assert.Error(t, o.Open(""))
}
