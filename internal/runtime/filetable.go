package runtime

import (
	"bufio"
	"os"
	"strings"

	"github.com/aclevel/pseudocode/pkg/ident"
)

// FileMode is a text file's open mode.
type FileMode int

const (
	FileRead FileMode = iota
	FileWrite
	FileAppend
)

func (m FileMode) String() string {
	switch m {
	case FileRead:
		return "READ"
	case FileWrite:
		return "WRITE"
	case FileAppend:
		return "APPEND"
	default:
		return "UNKNOWN"
	}
}

// FileHandle wraps one open text file: its path, mode, and logical EOF
// flag, plus the buffered reader/writer doing the actual I/O. Closure is
// guaranteed on any unwind path by FileTable.CloseAll.
type FileHandle struct {
	Path  string
	Mode  FileMode
	AtEOF bool

	file   *os.File
	reader *bufio.Reader
	writer *bufio.Writer
}

// FileTable is the evaluator's file-handle table, keyed case-insensitively
// by file-id. There is exactly one FileTable per interpreter run.
type FileTable struct {
	handles *ident.Map[*FileHandle]
}

// NewFileTable creates an empty file table.
func NewFileTable() *FileTable {
	return &FileTable{handles: ident.NewMap[*FileHandle]()}
}

// Open creates a new handle for id over path in mode. Fails if id already
// has an open handle.
func (t *FileTable) Open(id, path string, mode FileMode) error {
	if t.handles.Has(id) {
		return NewFileAlreadyOpen(0, 0, id)
	}

	var flag int
	switch mode {
	case FileRead:
		flag = os.O_RDONLY
	case FileWrite:
		flag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	case FileAppend:
		flag = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	}

	f, err := os.OpenFile(path, flag, 0o644)
	if err != nil {
		return NewIOError(0, 0, "OPENFILE", err)
	}

	h := &FileHandle{Path: path, Mode: mode, file: f}
	if mode == FileRead {
		h.reader = bufio.NewReader(f)
	} else {
		h.writer = bufio.NewWriter(f)
	}
	t.handles.Set(id, h)
	return nil
}

// Get returns the handle bound to id, if any.
func (t *FileTable) Get(id string) (*FileHandle, bool) {
	return t.handles.Get(id)
}

// Read reads one line (newline stripped) from id's handle. Mirrors the
// READFILE contract: an exhausted stream sets the EOF flag and yields an
// empty string rather than failing.
func (t *FileTable) Read(id string) (string, error) {
	h, ok := t.handles.Get(id)
	if !ok {
		return "", NewFileNotOpen(0, 0, id)
	}
	if h.Mode != FileRead {
		return "", NewFileModeMismatch(0, 0, id, "READ", h.Mode.String())
	}

	line, err := h.reader.ReadString('\n')
	if line == "" && err != nil {
		h.AtEOF = true
		return "", nil
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Write appends content plus a trailing newline to id's handle.
func (t *FileTable) Write(id, content string) error {
	h, ok := t.handles.Get(id)
	if !ok {
		return NewFileNotOpen(0, 0, id)
	}
	if h.Mode != FileWrite && h.Mode != FileAppend {
		return NewFileModeMismatch(0, 0, id, "WRITE or APPEND", h.Mode.String())
	}
	if _, err := h.writer.WriteString(content + "\n"); err != nil {
		return NewIOError(0, 0, "WRITEFILE", err)
	}
	return nil
}

// EOF reports id's current EOF flag.
func (t *FileTable) EOF(id string) (bool, error) {
	h, ok := t.handles.Get(id)
	if !ok {
		return false, NewFileNotOpen(0, 0, id)
	}
	return h.AtEOF, nil
}

// Close flushes and closes id's handle and removes it from the table.
// Closing an id with no open handle is a no-op.
func (t *FileTable) Close(id string) error {
	h, ok := t.handles.Get(id)
	if !ok {
		return nil
	}
	t.handles.Delete(id)
	return closeHandle(h)
}

// CloseAll flushes and closes every open handle, best-effort, returning
// the first error encountered (if any) after attempting every handle.
// Called when the interpreter unwinds its top-level frame for any reason.
func (t *FileTable) CloseAll() error {
	var first error
	for _, id := range t.handles.Keys() {
		h, _ := t.handles.Get(id)
		if err := closeHandle(h); err != nil && first == nil {
			first = err
		}
	}
	t.handles.Clear()
	return first
}

func closeHandle(h *FileHandle) error {
	if h.writer != nil {
		if err := h.writer.Flush(); err != nil {
			h.file.Close()
			return NewIOError(0, 0, "CLOSEFILE", err)
		}
	}
	if err := h.file.Close(); err != nil {
		return NewIOError(0, 0, "CLOSEFILE", err)
	}
	return nil
}
