// services/mail_service.go
package services

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/go-resty/resty/v2"
)

type Attachment struct {
	Name    string
	Content []byte
}

type Mail struct {
	To         string
	ToName     string
	Subject    string
	Body       string
	Attachment *Attachment
}

// MailService sends transactional email through the Brevo API with the
// organization's own address in cc.
type MailService struct {
	client      *resty.Client
	apiKey      string
	senderName  string
	senderEmail string
	orgEmail    string
}

func NewMailService() *MailService {
	baseURL := os.Getenv("BREVO_API_URL")
	if baseURL == "" {
		baseURL = "https://api.brevo.com/v3"
	}
	senderName := os.Getenv("MAIL_SENDER_NAME")
	if senderName == "" {
		senderName = "Mahber"
	}
	senderEmail := os.Getenv("MAIL_SENDER_EMAIL")
	if senderEmail == "" {
		senderEmail = "info@mahber.be"
	}
	orgEmail := os.Getenv("ORG_EMAIL")
	if orgEmail == "" {
		orgEmail = senderEmail
	}

	return &MailService{
		client:      resty.New().SetBaseURL(baseURL),
		apiKey:      os.Getenv("BREVO_API_KEY"),
		senderName:  senderName,
		senderEmail: senderEmail,
		orgEmail:    orgEmail,
	}
}

// OrgEmail is the organization address used as sender, cc and follow-up
// recipient.
func (s *MailService) OrgEmail() string {
	return s.orgEmail
}

type brevoContact struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type brevoAttachment struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

type brevoEmail struct {
	Sender      brevoContact      `json:"sender"`
	To          []brevoContact    `json:"to"`
	Cc          []brevoContact    `json:"cc,omitempty"`
	Subject     string            `json:"subject"`
	TextContent string            `json:"textContent"`
	Attachment  []brevoAttachment `json:"attachment,omitempty"`
}

// Send delivers one email synchronously. A non-2xx provider response is an
// error; the caller decides what that means for the request.
func (s *MailService) Send(msg Mail) error {
	payload := brevoEmail{
		Sender:      brevoContact{Name: s.senderName, Email: s.senderEmail},
		To:          []brevoContact{{Name: msg.ToName, Email: msg.To}},
		Subject:     msg.Subject,
		TextContent: msg.Body,
	}
	if msg.To != s.orgEmail {
		payload.Cc = []brevoContact{{Email: s.orgEmail}}
	}
	if msg.Attachment != nil {
		payload.Attachment = []brevoAttachment{{
			Name:    msg.Attachment.Name,
			Content: base64.StdEncoding.EncodeToString(msg.Attachment.Content),
		}}
	}

	resp, err := s.client.R().
		SetHeader("api-key", s.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post("/smtp/email")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("brevo: %s: %s", resp.Status(), resp.String())
	}
	return nil
}
