package output

import (
	"fmt"
	"os"
	"sync"
)

// File appends rendered lines to a log file. Reopen closes and reopens the
// file under the same path so an external rotation (move the file away, signal
// the process) picks up a fresh one.
type File struct {
	mu   sync.Mutex
	path string
	f    *os.File
}

func NewFile(path string) (*File, error) {
	f, err := openAppend(path)
	if err != nil {
		return nil, err
	}
	return &File{path: path, f: f}, nil
}

func openAppend(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}

func (o *File) WriteBatch(entries [][]byte) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, entry := range entries {
		if _, err := o.f.Write(entry); err != nil {
			return err
		}
	}
	return nil
}

// Reopen swaps in a fresh file handle. Called on SIGHUP and on the reopen
// control command.
func (o *File) Reopen() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	f, err := openAppend(o.path)
	if err != nil {
		return err
	}
	o.f.Close()
	o.f = f
	return nil
}

func (o *File) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.f.Close()
}
