package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RelayClient отправляет письма через HTTP relay эндпоинт
type RelayClient struct {
	url        string
	httpClient *http.Client
	log        Logger
}

// NewRelayClient создает новый экземпляр клиента relay
func NewRelayClient(url string, timeout time.Duration, log Logger) *RelayClient {
	return &RelayClient{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Send отправляет письмо на relay и разбирает ответ {success, error}
func (c *RelayClient) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%w: failed to encode message: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %v", ErrInvalidResponse, err)
	}

	var out Response
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("%w: status %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}

	if resp.StatusCode != http.StatusOK || !out.Success {
		return fmt.Errorf("%w: status %d: %s", ErrDeliveryFailed, resp.StatusCode, out.Error)
	}

	c.log.Info("Relay accepted message subject=%q recipients=%d", msg.Subject, len(msg.To))
	return nil
}
