package services

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"net"
	"net/smtp"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"sojourn/internal/config"
)

type MailServiceInterface interface {
	SendPasswordReset(to, token string) error
}

type mailService struct {
	host     string
	port     int
	username string
	password string
	from     string
	baseURL  string
	html     *template.Template
	text     *template.Template
	logger   zerolog.Logger
}

// NewMailService degrades to a log-only sender when SMTP is unconfigured,
// so the reset flow stays identical in dev and prod.
func NewMailService(cfg *config.Config, logger zerolog.Logger) MailServiceInterface {
	if cfg.SMTPHost == "" {
		return &logMailService{baseURL: cfg.AppBaseURL, logger: logger}
	}
	return &mailService{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		from:     cfg.SMTPFrom,
		baseURL:  cfg.AppBaseURL,
		html:     template.Must(template.New("html").Parse(resetHTMLTemplate)),
		text:     template.Must(template.New("text").Parse(resetTextTemplate)),
		logger:   logger,
	}
}

type resetEmailData struct {
	Link string
	Year int
}

const resetHTMLTemplate = `<!doctype html>
<html>
<body style="font-family:sans-serif;max-width:600px;margin:0 auto;padding:24px">
  <h1>Reset your password</h1>
  <p>We received a request to reset your password. If this wasn't you, ignore this email.</p>
  <p><a href="{{.Link}}">Reset password</a></p>
  <p style="color:#64748b;font-size:13px">If the link doesn't work, copy it into your browser:<br>{{.Link}}</p>
  <p style="color:#64748b;font-size:13px">&copy; {{.Year}} Sojourn</p>
</body>
</html>`

const resetTextTemplate = `Reset your password

We received a request to reset your password. If this wasn't you, ignore this email.

Open this link:
{{.Link}}

- Sojourn (c) {{.Year}}
`

func (m *mailService) SendPasswordReset(to, token string) error {
	data := resetEmailData{
		Link: fmt.Sprintf("%s/reset-password?token=%s", strings.TrimRight(m.baseURL, "/"), url.QueryEscape(token)),
		Year: time.Now().Year(),
	}

	var hb, tb bytes.Buffer
	if err := m.html.Execute(&hb, data); err != nil {
		return err
	}
	if err := m.text.Execute(&tb, data); err != nil {
		return err
	}

	return m.send(to, "Reset your password", hb.String(), tb.String())
}

func (m *mailService) send(to, subject, htmlBody, textBody string) error {
	boundary := fmt.Sprintf("alt_%d", time.Now().UnixNano())

	var msg bytes.Buffer
	write := func(format string, a ...any) { _, _ = msg.WriteString(fmt.Sprintf(format, a...)) }

	write("From: %s\r\n", m.from)
	write("To: %s\r\n", to)
	write("Subject: %s\r\n", subject)
	write("Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	write("MIME-Version: 1.0\r\n")
	write("Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)

	write("--%s\r\n", boundary)
	write("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	write("%s\r\n\r\n", textBody)

	write("--%s\r\n", boundary)
	write("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	write("%s\r\n\r\n", htmlBody)

	write("--%s--\r\n", boundary)

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	auth := smtp.PlainAuth("", m.username, m.password, m.host)

	dialer := &net.Dialer{Timeout: 10 * time.Second}
	conn, err := dialer.Dial("tcp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	c, err := smtp.NewClient(conn, m.host)
	if err != nil {
		return err
	}
	defer c.Quit()

	if ok, _ := c.Extension("STARTTLS"); ok {
		tlsCfg := &tls.Config{ServerName: m.host, MinVersion: tls.VersionTLS12}
		if err = c.StartTLS(tlsCfg); err != nil {
			return err
		}
	}

	if err = c.Auth(auth); err != nil {
		return err
	}
	if err = c.Mail(m.from); err != nil {
		return err
	}
	if err = c.Rcpt(to); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err = w.Write(msg.Bytes()); err != nil {
		return err
	}
	return w.Close()
}

// logMailService records the reset link instead of sending it.
type logMailService struct {
	baseURL string
	logger  zerolog.Logger
}

func (m *logMailService) SendPasswordReset(to, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", strings.TrimRight(m.baseURL, "/"), url.QueryEscape(token))
	m.logger.Info().Str("to", to).Str("link", link).Msg("smtp unconfigured, password reset link logged")
	return nil
}
