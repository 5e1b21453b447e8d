package queue

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ytget/doc-sorter/internal/model"
)

// Queue is the ordered list of files found in one folder plus a cursor
type Queue struct {
	folder  string
	entries []model.FileEntry
	cursor  int
}

// Scan lists the immediate supported files of folder, sorted by name
func Scan(folder string) (*Queue, error) {
	dirEntries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("%w: reading folder %s: %w", model.ErrIO, folder, err)
	}

	names := make([]string, 0, len(dirEntries))
	for _, entry := range dirEntries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), "._") {
			continue
		}
		if model.KindOf(entry.Name()) == model.KindUnknown {
			continue
		}
		// Symlinks count when they resolve to a regular file
		if !entry.Type().IsRegular() && !isRegularFile(filepath.Join(folder, entry.Name())) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	entries := make([]model.FileEntry, 0, len(names))
	for _, name := range names {
		entries = append(entries, model.NewFileEntry(filepath.Join(folder, name)))
	}

	return &Queue{folder: folder, entries: entries}, nil
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Current returns the entry under the cursor, or false at the end
func (q *Queue) Current() (model.FileEntry, bool) {
	if q.cursor >= len(q.entries) {
		return model.FileEntry{}, false
	}
	return q.entries[q.cursor], true
}

// Advance moves the cursor to the next entry
func (q *Queue) Advance() {
	if q.cursor < len(q.entries) {
		q.cursor++
	}
}

// Remaining returns how many entries have not been triaged yet
func (q *Queue) Remaining() int {
	return len(q.entries) - q.cursor
}

// Len returns the number of scanned entries
func (q *Queue) Len() int {
	return len(q.entries)
}

// Position returns the cursor index
func (q *Queue) Position() int {
	return q.cursor
}

// Folder returns the scanned folder
func (q *Queue) Folder() string {
	return q.folder
}

// Done reports whether the cursor has reached the end
func (q *Queue) Done() bool {
	return q.cursor >= len(q.entries)
}
