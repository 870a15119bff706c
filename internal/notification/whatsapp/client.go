package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/frahmantamala/permit-management/internal/notification"
)

// Client talks to the WhatsApp provider's HTTP API. It implements
// notification.Gateway: provider rejections and timeouts come back as
// DeliveryResult values, never as Go errors, because a refused message is
// an ordinary outcome the caller records.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

type sendRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

type sendResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func NewClient(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

func (c *Client) Send(ctx context.Context, recipient, message string) notification.DeliveryResult {
	payload, err := json.Marshal(sendRequest{
		Phone:   recipient,
		Message: message,
	})
	if err != nil {
		return notification.DeliveryResult{Delivered: false, Reason: fmt.Sprintf("encode request: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(payload))
	if err != nil {
		return notification.DeliveryResult{Delivered: false, Reason: fmt.Sprintf("build request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	c.logger.Debug("sending whatsapp message", "recipient", recipient)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			c.logger.Error("whatsapp send timed out", "recipient", recipient)
			return notification.DeliveryResult{Delivered: false, Reason: "timeout"}
		}
		c.logger.Error("whatsapp send failed", "recipient", recipient, "error", err)
		return notification.DeliveryResult{Delivered: false, Reason: fmt.Sprintf("request failed: %v", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return notification.DeliveryResult{Delivered: false, Reason: fmt.Sprintf("read response: %v", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("whatsapp provider rejected message",
			"recipient", recipient,
			"status_code", resp.StatusCode)
		return notification.DeliveryResult{
			Delivered: false,
			Reason:    fmt.Sprintf("provider returned status %d", resp.StatusCode),
		}
	}

	var result sendResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return notification.DeliveryResult{Delivered: false, Reason: fmt.Sprintf("decode response: %v", err)}
	}

	if !result.Success {
		reason := result.Error
		if reason == "" {
			reason = "provider reported failure"
		}
		return notification.DeliveryResult{Delivered: false, Reason: reason}
	}

	return notification.DeliveryResult{Delivered: true}
}
