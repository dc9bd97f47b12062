package output

import (
	"io"
	"os"
)

// Console writes rendered lines to stdout.
type Console struct {
	w io.Writer
}

func NewConsole() *Console {
	return &Console{w: os.Stdout}
}

func (c *Console) WriteBatch(entries [][]byte) error {
	for _, entry := range entries {
		if _, err := c.w.Write(entry); err != nil {
			return err
		}
	}
	return nil
}
