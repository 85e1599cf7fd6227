package export

import (
	"io"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/valter-silva-au/burrito/internal/core"
	"github.com/valter-silva-au/burrito/pkg/models"
)

// resolveText parses and resolves a task file held in memory.
func resolveText(t *testing.T, text string) models.TaskMap {
	t.Helper()
	tasks, err := core.NewParser(afero.NewMemMapFs(), nil).ParseReader("tasks.md", ".", strings.NewReader(text))
	require.NoError(t, err)
	taskMap, err := core.Resolve(tasks, nil)
	require.NoError(t, err)
	return taskMap
}

// block builds a task block with the given header lines and notes.
func block(notes string, header ...string) string {
	return "---\n" + strings.Join(header, "\n") + "\n---\n" + notes
}

// stubMarkdown wraps notes in a marker instead of rendering them.
type stubMarkdown struct{}

func (stubMarkdown) Render(w io.Writer, source string) error {
	_, err := io.WriteString(w, "<md>"+source+"</md>")
	return err
}
