package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTableOfContents_Layout(t *testing.T) {
	tasks := resolveText(t,
		block("", "task 1", "label Root", "status TODO", "deadline 2024-03-15")+
			block("", "task 1.1", "label Sub <b>", "status BLOCKED", "depends 2")+
			block("", "task 2", "label Other", "status IN-PROGRESS"))

	var buf bytes.Buffer
	require.NoError(t, WriteTableOfContents(&buf, tasks, false))

	want := `<h1> Table of Contents </h1>
<ol class='toc'>
<li><strong style='font-size: 1.5em'> <a href='#1'> 1 </a> Root </strong> <span style='font-weight: bold; color: red'> TODO </span> by 2024-03-15 </li>
<ol class='toc'>
<li><strong style='font-size: 1.5em'> <a href='#1.1'> 1.1 </a> Sub &lt;b&gt; </strong> <span style='font-weight: bold; color: yellow'> BLOCKED </span> on <a href='#2'> 2 </a> </li>
</ol>
<li><strong style='font-size: 1.5em'> <a href='#2'> 2 </a> Other </strong> <span style='font-weight: bold; color: orange'> IN-PROGRESS </span> </li>
</ol>
`
	assert.Equal(t, want, buf.String())
}

func TestWriteTableOfContents_FoldHidesFinishedChildren(t *testing.T) {
	tasks := resolveText(t,
		block("", "task 1", "label Parent", "status IN-PROGRESS")+
			block("", "task 1.1", "label Finished", "status DONE")+
			block("", "task 1.1.1", "label Deep", "status DONE")+
			block("", "task 2", "label Next", "status TODO"))

	var folded bytes.Buffer
	require.NoError(t, WriteTableOfContents(&folded, tasks, true))
	assert.Contains(t, folded.String(), "<a href='#1'> 1 </a> Parent")
	assert.NotContains(t, folded.String(), "#1.1'")
	assert.NotContains(t, folded.String(), "#1.1.1'")
	assert.Contains(t, folded.String(), "<a href='#2'> 2 </a> Next")
	assert.Equal(t, strings.Count(folded.String(), "<ol"), strings.Count(folded.String(), "</ol>"))

	var unfolded bytes.Buffer
	require.NoError(t, WriteTableOfContents(&unfolded, tasks, false))
	assert.Contains(t, unfolded.String(), "<a href='#1.1'> 1.1 </a> Finished")
	assert.Contains(t, unfolded.String(), "<a href='#1.1.1'> 1.1.1 </a> Deep")
}

func TestWriteTableOfContents_BlockedIgnoresDoneAndUnknownDependencies(t *testing.T) {
	tasks := resolveText(t,
		block("", "task 1", "label Done", "status DONE")+
			block("", "task 2", "label Open", "status TODO")+
			block("", "task 3", "label Waiting", "status BLOCKED", "depends 1 2 9"))

	var buf bytes.Buffer
	require.NoError(t, WriteTableOfContents(&buf, tasks, false))

	assert.Contains(t, buf.String(), "BLOCKED </span> on <a href='#2'> 2 </a> </li>")
	assert.NotContains(t, buf.String(), "#9")
}

func TestWriteTableOfContents_BlockedWithNoOpenDependencies(t *testing.T) {
	tasks := resolveText(t, block("", "task 1", "label Stuck", "status BLOCKED"))

	var buf bytes.Buffer
	require.NoError(t, WriteTableOfContents(&buf, tasks, true))

	assert.Contains(t, buf.String(), "Stuck </strong> <span style='font-weight: bold; color: yellow'> BLOCKED </span> </li>")
}
