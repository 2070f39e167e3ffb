package mailer

import "context"

// LogSender только пишет письмо в лог, используется при transport = "log"
type LogSender struct {
	log Logger
}

// NewLogSender создает отправителя, который ничего не отправляет
func NewLogSender(log Logger) *LogSender {
	return &LogSender{log: log}
}

// Send логирует письмо
func (s *LogSender) Send(_ context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	s.log.Info("Email not sent (log transport) to=%v subject=%q", msg.To, msg.Subject)
	return nil
}
