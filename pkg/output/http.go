package output

import (
	"bytes"
	"fmt"
	"net/http"
	"time"
)

// HTTP posts each batch of rendered lines, newline-delimited, to a collector.
type HTTP struct {
	url    string
	client *http.Client
}

func NewHTTP(url string) *HTTP {
	return &HTTP{
		url: url,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

func (h *HTTP) WriteBatch(entries [][]byte) error {
	req, err := http.NewRequest(http.MethodPost, h.url, bytes.NewReader(bytes.Join(entries, nil)))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "text/plain")

	resp, err := h.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("collector returned status %d", resp.StatusCode)
	}
	return nil
}
