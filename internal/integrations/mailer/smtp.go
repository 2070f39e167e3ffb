package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"
)

const smtpsPort = 465

// SMTPSender доставляет письмо напрямую на SMTP сервер из параметров письма
type SMTPSender struct {
	timeout time.Duration
	log     Logger
}

// NewSMTPSender создает новый экземпляр SMTP отправителя
func NewSMTPSender(timeout time.Duration, log Logger) *SMTPSender {
	return &SMTPSender{timeout: timeout, log: log}
}

// Send отправляет письмо всем получателям одной SMTP сессией
// На порту 465 используется TLS с самого начала, иначе STARTTLS, если сервер его предлагает
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	if msg.SMTPHost == "" || msg.SMTPPort <= 0 {
		return fmt.Errorf("%w: smtp host and port are required", ErrNotConfigured)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	addr := net.JoinHostPort(msg.SMTPHost, strconv.Itoa(msg.SMTPPort))
	tlsConfig := &tls.Config{ServerName: msg.SMTPHost}

	dialer := &net.Dialer{}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("%w: dial %s: %v", ErrDeliveryFailed, addr, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	if msg.SMTPPort == smtpsPort {
		conn = tls.Client(conn, tlsConfig)
	}

	client, err := smtp.NewClient(conn, msg.SMTPHost)
	if err != nil {
		conn.Close()
		return fmt.Errorf("%w: smtp handshake: %v", ErrDeliveryFailed, err)
	}
	defer client.Close()

	if msg.SMTPPort != smtpsPort {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(tlsConfig); err != nil {
				return fmt.Errorf("%w: starttls: %v", ErrDeliveryFailed, err)
			}
		}
	}

	if msg.SMTPUser != "" {
		auth := smtp.PlainAuth("", msg.SMTPUser, msg.SMTPPassword, msg.SMTPHost)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("%w: auth: %v", ErrDeliveryFailed, err)
		}
	}

	if err := client.Mail(msg.FromEmail); err != nil {
		return fmt.Errorf("%w: MAIL FROM: %v", ErrDeliveryFailed, err)
	}
	for _, to := range msg.To {
		if err := client.Rcpt(to); err != nil {
			return fmt.Errorf("%w: RCPT TO %s: %v", ErrDeliveryFailed, to, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("%w: DATA: %v", ErrDeliveryFailed, err)
	}
	if _, err := w.Write(buildMessage(msg, time.Now())); err != nil {
		w.Close()
		return fmt.Errorf("%w: write body: %v", ErrDeliveryFailed, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("%w: close body: %v", ErrDeliveryFailed, err)
	}

	if err := client.Quit(); err != nil {
		s.log.Warn("SMTP QUIT failed for host=%s: %v", msg.SMTPHost, err)
	}

	s.log.Info("Email delivered via SMTP host=%s subject=%q recipients=%d", msg.SMTPHost, msg.Subject, len(msg.To))
	return nil
}

// buildMessage собирает RFC 5322 письмо с HTML телом
func buildMessage(msg Message, now time.Time) []byte {
	from := msg.FromEmail
	if msg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", msg.FromName), msg.FromEmail)
	}

	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + strings.Join(msg.To, ", ") + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", msg.Subject) + "\r\n")
	b.WriteString("Date: " + now.Format(time.RFC1123Z) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.HTML)
	b.WriteString("\r\n")
	return []byte(b.String())
}
