package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWritePlain_ClearedPriorityIsWrittenAsNone(t *testing.T) {
	tasks := resolveText(t,
		block("", "task 1", "label Root", "status TODO", "priority 4")+
			block("child notes\n", "task 1.1", "label Child", "status DONE", "priority none"))

	var buf bytes.Buffer
	require.NoError(t, WritePlain(&buf, tasks))

	want := `---
task 1
label Root
status TODO
priority 4
depends 1.1
---
---
task 1.1
label Child
status DONE
priority none
---
child notes
`
	assert.Equal(t, want, buf.String())
}

func TestWritePlain_SortsAndInheritsDeadline(t *testing.T) {
	tasks := resolveText(t,
		block("", "task 2", "label Two", "status TODO")+
			block("", "task 1", "label One", "status TODO", "deadline 2024-05-01")+
			block("", "task 1.1", "label Sub", "status TODO"))

	var buf bytes.Buffer
	require.NoError(t, WritePlain(&buf, tasks))

	out := buf.String()
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("task 1\n")), bytes.Index(buf.Bytes(), []byte("task 2\n")))
	assert.Contains(t, out, "task 1.1\nlabel Sub\nstatus TODO\ndeadline 2024-05-01\n")
	assert.NotContains(t, out, "priority")
}

func TestWritePlain_RoundTrip(t *testing.T) {
	text := block("Notes with **markdown**.\n\n- item\n", "task 1", "label Root", "status IN-PROGRESS", "priority 2", "deadline 2024-06-30") +
		block("", "task 1.1", "label A", "status DONE", "deadline none") +
		block("last", "task 2", "label B", "status BLOCKED", "depends 1")

	var first bytes.Buffer
	require.NoError(t, WritePlain(&first, resolveText(t, text)))

	var second bytes.Buffer
	require.NoError(t, WritePlain(&second, resolveText(t, first.String())))

	assert.Equal(t, first.String(), second.String())
	assert.Contains(t, first.String(), "---\nlast\n")
}
