// Package mailer sends transactional e-mail through the ZeptoMail HTTP API.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"sandgrund/pkg/logger"
)

type Mail struct {
	To       string
	ToName   string
	Subject  string
	HTMLBody string
}

type Sender interface {
	Send(ctx context.Context, mail Mail) error
}

// StatusError is returned for a non-2xx API response.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("zeptomail API error: %s", e.Status)
}

// Temporary reports whether resending later may succeed.
func (e *StatusError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

type emailRequest struct {
	From     emailAddress  `json:"from"`
	To       []toRecipient `json:"to"`
	Subject  string        `json:"subject"`
	HtmlBody string        `json:"htmlbody"`
}

type emailAddress struct {
	Address string `json:"address"`
}

type toRecipient struct {
	Email emailWithName `json:"email_address"`
}

type emailWithName struct {
	Address string `json:"address"`
	Name    string `json:"name"`
}

type ZeptoSender struct {
	apiURL string
	apiKey string
	from   string
	client *http.Client
	log    *logger.Logger
}

func NewZeptoSender(apiURL, apiKey, from string, log *logger.Logger) *ZeptoSender {
	return &ZeptoSender{
		apiURL: apiURL,
		apiKey: apiKey,
		from:   from,
		client: &http.Client{Timeout: 15 * time.Second},
		log:    log,
	}
}

func (s *ZeptoSender) Send(ctx context.Context, mail Mail) error {
	payload := emailRequest{
		From: emailAddress{Address: s.from},
		To: []toRecipient{
			{Email: emailWithName{Address: mail.To, Name: mail.ToName}},
		},
		Subject:  mail.Subject,
		HtmlBody: mail.HTMLBody,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted && resp.StatusCode != http.StatusOK {
		return &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	s.log.Info("Email sent", "to", mail.To, "subject", mail.Subject)
	return nil
}

// NopSender logs instead of sending. Used when mail is not configured.
type NopSender struct {
	Log *logger.Logger
}

func (s NopSender) Send(_ context.Context, mail Mail) error {
	if s.Log != nil {
		s.Log.Warn("mail not configured, dropping email", "to", mail.To, "subject", mail.Subject)
	}
	return nil
}
