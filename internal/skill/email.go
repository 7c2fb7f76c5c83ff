package skill

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "log/slog"

	mail "github.com/wneessen/go-mail"

	"jarvis/internal/nlu"
)

const (
	smtpTimeout = 10 * time.Second
	maxSubject  = 100
)

type Mailer interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

// SMTPMailer sends with PLAIN auth, over implicit TLS on port 465 and
// mandatory STARTTLS on any other port.
type SMTPMailer struct {
	Host     string
	Port     int
	Username string
	Password string
}

func (m *SMTPMailer) Send(ctx context.Context, from, to, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return fmt.Errorf("from: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	opts := []mail.Option{
		mail.WithPort(m.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.Username),
		mail.WithPassword(m.Password),
		mail.WithTimeout(smtpTimeout),
	}
	if m.Port == 465 {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	}

	client, err := mail.NewClient(m.Host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, smtpTimeout)
	defer cancel()

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send: %w", err)
	}
	return nil
}

type Email struct {
	User   string
	Pass   string
	Mailer Mailer
}

func NewEmail(user, pass, host string, port int) *Email {
	return &Email{
		User: user,
		Pass: pass,
		Mailer: &SMTPMailer{
			Host:     host,
			Port:     port,
			Username: user,
			Password: pass,
		},
	}
}

func (e *Email) Ready() (Result, bool) {
	if e.User == "" || e.Pass == "" {
		return Fail(CodeMisconfigured, nil, "Email credentials not configured"), false
	}
	return Result{}, true
}

func (e *Email) Execute(ctx context.Context, args Args) Result {
	if res, ok := e.Ready(); !ok {
		return res
	}

	to := SpokenAddress(args[nlu.ArgTo])
	subject := cleanSubject(args[nlu.ArgSubject])

	if err := e.Mailer.Send(ctx, e.User, to, subject, args[nlu.ArgBody]); err != nil {
		log.Error("Email failed", "to", to, "err", err)
		return Fail(CodeUnavailable, err, fmt.Sprintf("Email failed: %v", err))
	}
	return OK("Email sent successfully")
}

// SpokenAddress turns a dictated address ("john dot doe at gmail dot com")
// into a usable one. Typed addresses pass through unchanged.
func SpokenAddress(s string) string {
	s = " " + strings.ToLower(strings.TrimSpace(s)) + " "
	s = strings.ReplaceAll(s, " at ", "@")
	s = strings.ReplaceAll(s, " dot ", ".")
	return strings.Join(strings.Fields(s), "")
}

func cleanSubject(s string) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
	if r := []rune(s); len(r) > maxSubject {
		s = string(r[:maxSubject])
	}
	return s
}
