package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/smtp"
	"time"

	"github.com/subkart/core/internal/config"
)

var brevoEndpoint = "https://api.brevo.com/v3/smtp/email"

// Message is a single email to send.
type Message struct {
	To      string
	ToName  string
	Subject string
	HTML    string
}

// Sender sends emails via the Brevo HTTP API, falling back to SMTP when no
// API key is configured.
type Sender struct {
	cfg        config.MailConfig
	httpClient *http.Client
}

func New(cfg config.MailConfig) *Sender {
	return &Sender{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *Sender) senderName() string {
	if s.cfg.SenderName != "" {
		return s.cfg.SenderName
	}
	return "SubKart"
}

func (s *Sender) senderAddress() string {
	if s.cfg.SenderAddress != "" {
		return s.cfg.SenderAddress
	}
	return "no-reply@subkart.app"
}

// Send dispatches an email. Uses Brevo if configured, otherwise SMTP.
func (s *Sender) Send(ctx context.Context, msg Message) error {
	if s.cfg.BrevoKey != "" {
		return s.sendBrevo(ctx, msg)
	}
	return s.sendSMTP(msg)
}

type brevoParty struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

// sendBrevo posts the message to Brevo's transactional endpoint.
func (s *Sender) sendBrevo(ctx context.Context, msg Message) error {
	payload, _ := json.Marshal(map[string]interface{}{
		"sender":      brevoParty{Name: s.senderName(), Email: s.senderAddress()},
		"to":          []brevoParty{{Name: msg.ToName, Email: msg.To}},
		"subject":     msg.Subject,
		"htmlContent": msg.HTML,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, brevoEndpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("api-key", s.cfg.BrevoKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		var errResp struct {
			Message string `json:"message"`
		}
		json.NewDecoder(resp.Body).Decode(&errResp)
		return fmt.Errorf("brevo error %d: %s", resp.StatusCode, errResp.Message)
	}
	return nil
}

// sendSMTP sends via net/smtp.
func (s *Sender) sendSMTP(msg Message) error {
	host := s.cfg.SMTPHost
	if host == "" {
		return fmt.Errorf("mail transport not configured")
	}
	port := s.cfg.SMTPPort
	if port == 0 {
		port = 587
	}
	addr := fmt.Sprintf("%s:%d", host, port)
	from := s.senderAddress()

	var body bytes.Buffer
	body.WriteString("MIME-Version: 1.0\r\n")
	body.WriteString(fmt.Sprintf("From: %s <%s>\r\n", s.senderName(), from))
	body.WriteString(fmt.Sprintf("To: %s\r\n", msg.To))
	body.WriteString(fmt.Sprintf("Subject: %s\r\n", msg.Subject))
	body.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	body.WriteString("\r\n")
	body.WriteString(msg.HTML)

	auth := smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPass, host)
	return smtp.SendMail(addr, auth, from, []string{msg.To}, body.Bytes())
}

// SendWelcome sends the post-registration welcome email.
func (s *Sender) SendWelcome(ctx context.Context, to, name string) error {
	html, err := renderTemplate(welcomeTpl, welcomeData{Name: name})
	if err != nil {
		return err
	}
	return s.Send(ctx, Message{
		To:      to,
		ToName:  name,
		Subject: "Welcome to Our App!",
		HTML:    html,
	})
}

// SendPasswordResetOTP mails a one-time password-reset code. The code never
// leaves the process through any other channel.
func (s *Sender) SendPasswordResetOTP(ctx context.Context, to string, code int) error {
	html, err := renderTemplate(otpTpl, otpData{Code: code})
	if err != nil {
		return err
	}
	return s.Send(ctx, Message{
		To:      to,
		Subject: "Your Password Reset OTP",
		HTML:    html,
	})
}
