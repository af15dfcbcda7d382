// Package sheet reads the optional spreadsheet webhook that tracks which
// generated student accounts have been handed out.
package sheet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/truongminh05/VCI-Web/config"
	pkgerrors "github.com/truongminh05/VCI-Web/pkg/errors"
)

// ErrNotConfigured is returned when no webhook URL is set.
var ErrNotConfigured = errors.New("sheet webhook not configured")

// AccountRow is one generated account as recorded in the sheet.
type AccountRow struct {
	ID        int64  `json:"id"`
	CreatedAt string `json:"created_at"`
	ClassID   string `json:"lop_id"`
	ClassName string `json:"lop_ten"`
	FullName  string `json:"ho_ten"`
	Code      string `json:"ma_sinh_vien"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Handed    bool   `json:"assigned"`
}

type payload struct {
	OK    bool         `json:"ok"`
	Rows  []AccountRow `json:"rows"`
	Error string       `json:"error"`
}

// Client fetches rows from the webhook.
type Client struct {
	url  string
	http *http.Client
}

// NewClient creates a Client; an empty URL yields a client that always
// returns ErrNotConfigured.
func NewClient(cfg *config.SheetConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Client{url: cfg.WebhookURL, http: &http.Client{Timeout: timeout}}
}

// Configured reports whether a webhook URL is set.
func (c *Client) Configured() bool { return c.url != "" }

// ListAccounts returns every account row from the sheet.
func (c *Client) ListAccounts(ctx context.Context) ([]AccountRow, error) {
	if c.url == "" {
		return nil, ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build sheet request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-store")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, pkgerrors.Network(err)
	}
	defer resp.Body.Close()

	var p payload
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, pkgerrors.Network(fmt.Errorf("decode sheet response: %w", err))
	}
	if !p.OK {
		msg := p.Error
		if msg == "" {
			msg = "Lỗi đọc Google Sheet"
		}
		return nil, pkgerrors.FromResponse(resp.StatusCode, msg)
	}
	if p.Rows == nil {
		p.Rows = []AccountRow{}
	}
	return p.Rows, nil
}
