// Package mailer renders the notification templates and delivers them over SMTP.
package mailer

//go:generate go run go.uber.org/mock/mockgen -source=./mailer.go -destination=./mocks/mailer_mock.go -package=mocks

import (
	"bytes"
	"context"
	"crypto/tls"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/wneessen/go-mail"

	"tourbook/config"
	"tourbook/shared/retry"
)

//go:embed templates/*.html
var templateFS embed.FS

const defaultTimeout = 10 * time.Second

// Sender delivers one templated email.
type Sender interface {
	SendTemplated(ctx context.Context, templateID string, recipients []string, data map[string]any) error
}

// DeliveryError is a failed delivery. Temporary marks failures another attempt may fix.
type DeliveryError struct {
	Code      int
	Message   string
	Temporary bool
	Err       error
}

func (e *DeliveryError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("smtp %d: %s", e.Code, e.Message)
	}

	return e.Message
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// Classify is the email classifier for the retry engine. SMTP 4xx replies
// (greylisting, rate limits, full mailbox) and network errors are retried, 5xx
// replies and rendering errors are permanent.
func Classify(err error) retry.Class {
	var derr *DeliveryError
	if errors.As(err, &derr) && !derr.Temporary {
		return retry.Terminal
	}

	return retry.Retryable
}

type rendered struct {
	subject string
	body    string
}

type smtpSender struct {
	host      string
	from      string
	options   []mail.Option
	templates map[string]*template.Template
}

// New returns an SMTP sender for the configured relay.
func New(cfg *config.Config) Sender {
	sender, err := NewSMTP(cfg.Email.SMTP.Host, cfg.Email.SMTP.Port, cfg.Email.SMTP.Username, cfg.Email.SMTP.Password, cfg.Email.From)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up email sender")
	}

	return sender
}

// NewSMTP builds a sender for one relay. STARTTLS is used whenever the relay
// offers it, credentials are only sent when a username is set.
func NewSMTP(host, port, username, password, from string) (Sender, error) {
	templates, err := loadTemplates()
	if err != nil {
		return nil, err
	}

	portNumber, err := strconv.Atoi(port)
	if err != nil {
		return nil, fmt.Errorf("invalid smtp port %q: %w", port, err)
	}

	options := []mail.Option{
		mail.WithPort(portNumber),
		mail.WithTimeout(defaultTimeout),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
		mail.WithTLSConfig(&tls.Config{ServerName: host, MinVersion: tls.VersionTLS12}),
	}

	if username != "" {
		options = append(options,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(username),
			mail.WithPassword(password),
		)
	}

	return &smtpSender{
		host:      host,
		from:      from,
		options:   options,
		templates: templates,
	}, nil
}

func loadTemplates() (map[string]*template.Template, error) {
	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("listing email templates: %w", err)
	}

	templates := make(map[string]*template.Template, len(files))

	for _, file := range files {
		tmpl, err := template.ParseFS(templateFS, file)
		if err != nil {
			return nil, fmt.Errorf("parsing email template %s: %w", file, err)
		}

		templates[strings.TrimSuffix(path.Base(file), ".html")] = tmpl
	}

	return templates, nil
}

func (s *smtpSender) render(templateID string, data map[string]any) (rendered, error) {
	tmpl, ok := s.templates[templateID]
	if !ok {
		return rendered{}, &DeliveryError{Message: "unknown email template " + templateID}
	}

	var subject, body bytes.Buffer

	if err := tmpl.ExecuteTemplate(&subject, "subject", data); err != nil {
		return rendered{}, &DeliveryError{Message: "rendering subject of " + templateID, Err: err}
	}

	if err := tmpl.ExecuteTemplate(&body, "body", data); err != nil {
		return rendered{}, &DeliveryError{Message: "rendering body of " + templateID, Err: err}
	}

	return rendered{subject: strings.TrimSpace(subject.String()), body: body.String()}, nil
}

func (s *smtpSender) SendTemplated(ctx context.Context, templateID string, recipients []string, data map[string]any) error {
	if len(recipients) == 0 {
		return &DeliveryError{Message: "no recipients"}
	}

	content, err := s.render(templateID, data)
	if err != nil {
		return err
	}

	msg, err := s.message(recipients, content)
	if err != nil {
		return err
	}

	// a client holds one connection, so every delivery gets its own
	client, err := mail.NewClient(s.host, s.options...)
	if err != nil {
		return &DeliveryError{Message: "configuring smtp client", Err: err}
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return toDeliveryError(err)
	}

	return nil
}

func (s *smtpSender) message(recipients []string, content rendered) (*mail.Msg, error) {
	msg := mail.NewMsg()

	if err := msg.From(s.from); err != nil {
		return nil, &DeliveryError{Message: "invalid sender address " + s.from, Err: err}
	}

	if err := msg.To(recipients...); err != nil {
		return nil, &DeliveryError{Message: "invalid recipient address", Err: err}
	}

	msg.Subject(content.subject)
	msg.SetDate()
	msg.SetMessageID()
	msg.SetBodyString(mail.TypeTextHTML, content.body)

	return msg, nil
}

// toDeliveryError maps a failed transaction onto DeliveryError. Replies the
// relay marked temporary (4xx) and failures before any reply, such as a
// refused connection, may succeed on another attempt.
func toDeliveryError(err error) error {
	var derr *DeliveryError
	if errors.As(err, &derr) {
		return derr
	}

	var sendErr *mail.SendError
	if errors.As(err, &sendErr) {
		return &DeliveryError{
			Code:      sendErr.ErrorCode(),
			Message:   err.Error(),
			Temporary: sendErr.IsTemp(),
			Err:       err,
		}
	}

	return &DeliveryError{Message: err.Error(), Temporary: true, Err: err}
}
