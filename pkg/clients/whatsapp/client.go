package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MauLang18/Cotizacion-CF/internal/config"
)

// ErrSendFailed wraps every failed delivery attempt.
var ErrSendFailed = errors.New("whatsapp send failed")

// Notifier delivers plain-text notifications to a fixed recipient.
type Notifier interface {
	Notify(ctx context.Context, body string) error
}

// APIClient is a resty-backed Notifier for the WhatsApp Cloud API.
type APIClient struct {
	httpClient    *resty.Client
	phoneNumberID string
	recipient     string
}

// NewClient builds a WhatsApp API client using the provided configuration values.
func NewClient(cfg config.WhatsAppConfig) *APIClient {
	base := strings.TrimSuffix(cfg.BaseURL, "/")

	restyClient := resty.New()
	restyClient.
		SetBaseURL(fmt.Sprintf("%s/%s", base, cfg.APIVersion)).
		SetAuthToken(cfg.AccessToken).
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &APIClient{
		httpClient:    restyClient,
		phoneNumberID: cfg.PhoneNumberID,
		recipient:     cfg.RecipientID,
	}
}

type textMessage struct {
	MessagingProduct string `json:"messaging_product"`
	To               string `json:"to"`
	Type             string `json:"type"`
	Text             struct {
		Body       string `json:"body"`
		PreviewURL bool   `json:"preview_url"`
	} `json:"text"`
}

type sendResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

// apiError represents a WhatsApp Cloud API error payload.
type apiError struct {
	Error struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// Notify sends body as a text message to the configured recipient.
func (c *APIClient) Notify(ctx context.Context, body string) error {
	msg := textMessage{MessagingProduct: "whatsapp", To: c.recipient, Type: "text"}
	msg.Text.Body = body

	result := new(sendResponse)
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(msg).
		SetResult(result).
		SetError(apiErr).
		Post(fmt.Sprintf("%s/messages", c.phoneNumberID))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	if resp.IsError() {
		code := resp.StatusCode()
		if apiErr.Error.Code != 0 {
			code = apiErr.Error.Code
		}
		return fmt.Errorf("%w: code=%d, message=%s", ErrSendFailed, code, apiErr.Error.Message)
	}

	if len(result.Messages) == 0 {
		return fmt.Errorf("%w: no message id returned", ErrSendFailed)
	}
	return nil
}
