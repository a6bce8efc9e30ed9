// internal/ticketing/client.go
package ticketing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"hr-service-agent/internal/common/config"
	apperrors "hr-service-agent/internal/common/errors"
	"hr-service-agent/internal/common/logger"
)

// mockAPIKey puts the client into mock mode, where notes are logged instead
// of sent. This keeps local development working without service-desk access.
const mockAPIKey = "dummy_key"

// Client posts notes back onto service-desk tickets.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        logger.Logger
}

// NewClient builds a ticketing client from config. An empty or dummy API
// key selects mock mode.
func NewClient(cfg config.TicketingConfig, log logger.Logger) *Client {
	timeout := time.Duration(cfg.Timeout) * time.Millisecond
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

func (c *Client) mockMode() bool {
	return c.apiKey == "" || c.apiKey == mockAPIKey || c.baseURL == ""
}

type notePayload struct {
	Content    string `json:"content"`
	Private    bool   `json:"private"`
	Attachment string `json:"attachment,omitempty"`
}

// AddNote posts one note onto a ticket. attachmentPath, when set, is
// referenced by filename; the document itself is served from the downloads
// endpoint.
func (c *Client) AddNote(ctx context.Context, ticketID, content string, private bool, attachmentPath string) error {
	if c.mockMode() {
		c.log.Info("mock mode: skipping ticket note", map[string]interface{}{
			"ticketId": ticketID,
			"private":  private,
		})
		return nil
	}

	payload := notePayload{Content: content, Private: private}
	if attachmentPath != "" {
		payload.Attachment = filepath.Base(attachmentPath)
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return apperrors.NewTicketUpdateError(fmt.Sprintf("ticket %s: %v", ticketID, err))
	}

	url := fmt.Sprintf("%s/api/v1/tickets/%s/notes", c.baseURL, ticketID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return apperrors.NewTicketUpdateError(fmt.Sprintf("ticket %s: %v", ticketID, err))
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.NewTicketUpdateError(fmt.Sprintf("ticket %s: %v", ticketID, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		c.log.Error("ticket note rejected", map[string]interface{}{
			"ticketId": ticketID,
			"status":   resp.StatusCode,
			"body":     string(respBody),
		})
		return apperrors.NewTicketUpdateError(fmt.Sprintf("ticket %s: unexpected status %d", ticketID, resp.StatusCode))
	}
	return nil
}
