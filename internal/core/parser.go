package core

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"
	"github.com/valter-silva-au/burrito/internal/observability"
	"github.com/valter-silva-au/burrito/pkg/models"
)

// Delimiter separates task headers from note bodies.
const Delimiter = "---"

// ErrMissingProperty is the kind of the fatal error raised when a task block
// closes without one of its mandatory properties.
var ErrMissingProperty = errors.New("missing mandatory task property")

// ParseError reports a task block that cannot be turned into a task.
type ParseError struct {
	Pos      models.Position
	Property string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s Task properties must have a '%s' property value", e.Pos, e.Property)
}

func (e *ParseError) Unwrap() error { return ErrMissingProperty }

// mandatoryProperties must be present when a task block closes.
var mandatoryProperties = []string{"task", "label", "status"}

var taskProperties = map[string]bool{
	"task":     true,
	"label":    true,
	"status":   true,
	"priority": true,
	"deadline": true,
	"depends":  true,
}

const includeProperty = "include"

// Parser reads task files into task records. Included files are opened
// through the parser's filesystem.
type Parser struct {
	fs    afero.Fs
	diag  observability.Sink
	files []string
}

// NewParser creates a Parser reading from fs and reporting to diag.
func NewParser(fs afero.Fs, diag observability.Sink) *Parser {
	if diag == nil {
		diag = observability.Discard
	}
	return &Parser{fs: fs, diag: diag}
}

// ParseFile parses the task file at path together with every file it
// includes. Tasks are returned in the order they were encountered.
func (p *Parser) ParseFile(path string) ([]*models.Task, error) {
	f, err := p.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening task file %s: %w", path, err)
	}
	p.files = append(p.files, filepath.Clean(path))
	return p.run(newFrame(path, filepath.Dir(path), f, f))
}

// ParseReader parses task text read from r. name is used in diagnostics and
// dir is the directory relative includes are resolved against.
func (p *Parser) ParseReader(name, dir string, r io.Reader) ([]*models.Task, error) {
	return p.run(newFrame(name, dir, r, nil))
}

// Files returns the path of every file opened so far, in opening order. A
// file included more than once is listed each time.
func (p *Parser) Files() []string {
	return p.files
}

func (p *Parser) run(root *fileFrame) ([]*models.Task, error) {
	stack := []*fileFrame{root}
	defer func() {
		for _, f := range stack {
			f.close()
		}
	}()

	var tasks []*models.Task
	for len(stack) > 0 {
		top := stack[len(stack)-1]

		line, ok, err := top.next()
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", top.name, err)
		}
		if !ok {
			tasks = p.finish(top, tasks)
			top.close()
			stack = stack[:len(stack)-1]
			continue
		}

		includes, err := p.step(top, line, &tasks)
		if err != nil {
			return nil, err
		}

		// Push in reverse so the first include is parsed first.
		for i := len(includes) - 1; i >= 0; i-- {
			frame, err := p.openInclude(includes[i], stack)
			if err != nil {
				return nil, err
			}
			if frame != nil {
				stack = append(stack, frame)
			}
		}
	}
	return tasks, nil
}

// step feeds one line to the frame's state machine. It returns the include
// references of an include block that just closed.
func (p *Parser) step(f *fileFrame, line string, tasks *[]*models.Task) ([]includeRef, error) {
	trimmed := strings.TrimSpace(line)
	isDelimiter := trimmed == Delimiter

	switch f.state {
	case stateOutside:
		if isDelimiter {
			f.openBlock()
			return nil, nil
		}
		p.diag.Warn(f.pos, "Ignoring content that does not belong to a task")

	case stateNotes:
		if isDelimiter {
			*tasks = append(*tasks, f.flushTask())
			f.openBlock()
			return nil, nil
		}
		f.notes.WriteString(line)

	case stateHeader:
		if isDelimiter {
			return p.closeBlock(f)
		}
		p.headerLine(f, trimmed)
	}
	return nil, nil
}

func (p *Parser) headerLine(f *fileFrame, line string) {
	b := f.block
	if line == "" {
		p.diag.Warn(f.pos, "Blank lines are not recommended within task blocks")
		return
	}

	prop, value, _ := strings.Cut(line, " ")
	value = strings.TrimSpace(value)

	if prop == includeProperty {
		if b.kind == blockTask {
			p.diag.Warn(f.pos, "Ignoring include line within a task block")
			return
		}
		b.kind = blockInclude
		if value == "" {
			p.diag.Warn(f.pos, "Include line must name a file")
			return
		}
		b.includes = append(b.includes, includeRef{path: value, pos: f.pos, dir: f.dir})
		return
	}

	if !taskProperties[prop] {
		p.diag.Warn(f.pos, "Unexpected property type '%s' in task block", prop)
		return
	}
	if b.kind == blockInclude {
		p.diag.Warn(f.pos, "Ignoring task property '%s' within an include block", prop)
		return
	}
	b.kind = blockTask

	if b.seen[prop] {
		p.diag.Warn(f.pos, "Duplicate property '%s' not allowed in task block", prop)
		return
	}
	if p.parseProperty(b, prop, value, f.pos) {
		b.seen[prop] = true
	}
}

// parseProperty validates value and stores it in the block. It reports
// whether the value was accepted.
func (p *Parser) parseProperty(b *blockBuilder, prop, value string, pos models.Position) bool {
	switch prop {
	case "task":
		id, err := models.ParseTaskID(value)
		if err != nil {
			p.diag.Warn(pos, "%s", err)
			return false
		}
		b.task.ID = id

	case "label":
		if value == "" {
			p.diag.Warn(pos, "Task label cannot be empty")
			return false
		}
		b.task.Label = value

	case "status":
		status, err := models.ParseTaskStatus(value)
		if err != nil {
			p.diag.Warn(pos, "Invalid status value '%s'", strings.ToUpper(value))
			return false
		}
		b.task.Status = status

	case "priority":
		if strings.EqualFold(value, "none") {
			b.task.Priority = models.Cleared[int]()
			return true
		}
		priority, err := strconv.Atoi(value)
		if err != nil {
			p.diag.Warn(pos, "Priority value '%s' must be an integer", value)
			return false
		}
		if priority < models.MinPriority || priority > models.MaxPriority {
			p.diag.Warn(pos, "Priority value '%d' not in range %d..%d", priority, models.MinPriority, models.MaxPriority)
			return false
		}
		b.task.Priority = models.Value(priority)

	case "deadline":
		if strings.EqualFold(value, "none") {
			b.task.Deadline = models.Cleared[models.Date]()
			return true
		}
		date, err := models.ParseDate(value)
		if err != nil {
			p.diag.Warn(pos, "Deadline value '%s' not in format YYYY-MM-DD", value)
			return false
		}
		b.task.Deadline = models.Value(date)

	case "depends":
		fields := strings.Fields(value)
		if len(fields) == 0 {
			p.diag.Warn(pos, "Depends list should be left out if there are no dependent tasks")
			return false
		}
		deps := models.NewIDSet()
		for _, field := range fields {
			id, err := models.ParseTaskID(field)
			if err != nil {
				p.diag.Warn(pos, "Issue with task ID %s: %s", field, err)
				return false
			}
			deps.Add(id)
		}
		b.task.Depends = deps
	}
	return true
}

// closeBlock finishes the header at the closing delimiter.
func (p *Parser) closeBlock(f *fileFrame) ([]includeRef, error) {
	b := f.block
	f.block = nil

	if b.kind == blockInclude {
		f.state = stateOutside
		return b.includes, nil
	}

	for _, prop := range mandatoryProperties {
		if !b.seen[prop] {
			err := &ParseError{Pos: f.pos, Property: prop}
			p.diag.Error(f.pos, "Task properties must have a '%s' property value", prop)
			return nil, err
		}
	}

	task := b.task
	if task.Depends == nil {
		task.Depends = models.NewIDSet()
	}
	task.Source = f.pos
	f.current = task
	f.state = stateNotes
	return nil, nil
}

// finish handles end of input for a frame and returns the updated task list.
func (p *Parser) finish(f *fileFrame, tasks []*models.Task) []*models.Task {
	switch f.state {
	case stateNotes:
		tasks = append(tasks, f.flushTask())
	case stateHeader:
		if f.block.kind == blockInclude {
			p.diag.Warn(f.pos, "Unexpected include block at end of file")
		} else {
			p.diag.Warn(f.pos, "Unexpected task block at end of file")
		}
		f.block = nil
	}
	return tasks
}

// openInclude resolves an include reference and opens it as a new frame.
// A nil frame means the include was skipped with a warning.
func (p *Parser) openInclude(ref includeRef, stack []*fileFrame) (*fileFrame, error) {
	path := ref.path
	if !filepath.IsAbs(path) {
		path = filepath.Join(ref.dir, path)
	}
	path = filepath.Clean(path)

	exists, err := afero.Exists(p.fs, path)
	if err != nil {
		return nil, fmt.Errorf("checking include %s: %w", path, err)
	}
	if !exists {
		p.diag.Warn(ref.pos, "Include file '%s' does not exist", ref.path)
		return nil, nil
	}

	for _, active := range stack {
		if active.key == path {
			p.diag.Warn(ref.pos, "Include cycle: '%s' is already being parsed", ref.path)
			return nil, nil
		}
	}

	f, err := p.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening include %s: %w", path, err)
	}
	p.files = append(p.files, path)
	return newFrame(path, filepath.Dir(path), f, f), nil
}

type parseState int

const (
	stateOutside parseState = iota
	stateHeader
	stateNotes
)

type blockKind int

const (
	blockUnknown blockKind = iota
	blockTask
	blockInclude
)

type includeRef struct {
	path string
	dir  string
	pos  models.Position
}

type blockBuilder struct {
	kind     blockKind
	seen     map[string]bool
	task     *models.Task
	includes []includeRef
}

// fileFrame is one file on the include stack with its own read position.
type fileFrame struct {
	name   string
	key    string
	dir    string
	reader *bufio.Reader
	closer io.Closer
	pos    models.Position

	state   parseState
	block   *blockBuilder
	current *models.Task
	notes   strings.Builder
	eof     bool
}

func newFrame(name, dir string, r io.Reader, closer io.Closer) *fileFrame {
	return &fileFrame{
		name:   name,
		key:    filepath.Clean(name),
		dir:    dir,
		reader: bufio.NewReader(r),
		closer: closer,
		pos:    models.Position{File: name},
	}
}

// next returns the next line including its terminator. ok is false at end of
// input.
func (f *fileFrame) next() (line string, ok bool, err error) {
	if f.eof {
		return "", false, nil
	}
	line, err = f.reader.ReadString('\n')
	if err == io.EOF {
		f.eof = true
		if line == "" {
			return "", false, nil
		}
		err = nil
	}
	if err != nil {
		return "", false, err
	}
	f.pos.Line++
	return line, true, nil
}

func (f *fileFrame) openBlock() {
	f.state = stateHeader
	f.block = &blockBuilder{
		seen: make(map[string]bool),
		task: &models.Task{},
	}
}

func (f *fileFrame) flushTask() *models.Task {
	task := f.current
	task.Notes = f.notes.String()
	f.notes.Reset()
	f.current = nil
	return task
}

func (f *fileFrame) close() {
	if f.closer != nil {
		_ = f.closer.Close()
		f.closer = nil
	}
}
