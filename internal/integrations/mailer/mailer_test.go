package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testMessage() Message {
	return Message{
		To:           []string{"anna@example.com"},
		Subject:      "Booking confirmed",
		HTML:         "<p>See you soon</p>",
		SMTPHost:     "smtp.example.com",
		SMTPPort:     587,
		SMTPUser:     "salon",
		SMTPPassword: "secret",
		FromEmail:    "hello@salon.test",
		FromName:     "Iris Salon",
	}
}

func TestMessage_Validate(t *testing.T) {
	msg := testMessage()
	require.NoError(t, msg.Validate())

	noTo := testMessage()
	noTo.To = nil
	assert.ErrorIs(t, noTo.Validate(), ErrInvalidMessage)

	badTo := testMessage()
	badTo.To = []string{"not-an-address"}
	assert.ErrorIs(t, badTo.Validate(), ErrInvalidMessage)

	noFrom := testMessage()
	noFrom.FromEmail = ""
	assert.ErrorIs(t, noFrom.Validate(), ErrInvalidMessage)
}

func TestMessage_Redacted(t *testing.T) {
	msg := testMessage()
	assert.Equal(t, "***", msg.Redacted().SMTPPassword)
	assert.Equal(t, "secret", msg.SMTPPassword)
}

func TestRelayClient_Send(t *testing.T) {
	var received Message
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		raw := map[string]interface{}{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		for _, key := range []string{"to", "subject", "html", "smtp_host", "smtp_port", "smtp_user", "smtp_password", "from_email", "from_name"} {
			assert.Contains(t, raw, key)
		}
		b, _ := json.Marshal(raw)
		_ = json.Unmarshal(b, &received)

		_ = json.NewEncoder(w).Encode(Response{Success: true})
	}))
	defer server.Close()

	client := NewRelayClient(server.URL, time.Second, nopLogger{})
	require.NoError(t, client.Send(context.Background(), testMessage()))
	assert.Equal(t, testMessage(), received)
}

func TestRelayClient_Failure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_ = json.NewEncoder(w).Encode(Response{Success: false, Error: "auth failed"})
	}))
	defer server.Close()

	err := NewRelayClient(server.URL, time.Second, nopLogger{}).Send(context.Background(), testMessage())
	require.ErrorIs(t, err, ErrDeliveryFailed)
	assert.Contains(t, err.Error(), "auth failed")
}

func TestRelayClient_NonJSONResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>oops</html>"))
	}))
	defer server.Close()

	err := NewRelayClient(server.URL, time.Second, nopLogger{}).Send(context.Background(), testMessage())
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestRelayClient_RejectsInvalidMessageLocally(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	msg := testMessage()
	msg.Subject = " "
	err := NewRelayClient(server.URL, time.Second, nopLogger{}).Send(context.Background(), msg)
	assert.ErrorIs(t, err, ErrInvalidMessage)
	assert.False(t, called)
}

func TestSMTPSender_RequiresHost(t *testing.T) {
	msg := testMessage()
	msg.SMTPHost = ""
	err := NewSMTPSender(time.Second, nopLogger{}).Send(context.Background(), msg)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestBuildMessage(t *testing.T) {
	msg := testMessage()
	msg.To = append(msg.To, "admin@salon.test")
	now := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

	out := string(buildMessage(msg, now))
	assert.Contains(t, out, "From: Iris Salon <hello@salon.test>\r\n")
	assert.Contains(t, out, "To: anna@example.com, admin@salon.test\r\n")
	assert.Contains(t, out, "Subject: Booking confirmed\r\n")
	assert.Contains(t, out, "Content-Type: text/html; charset=utf-8\r\n")
	assert.True(t, strings.HasSuffix(out, "\r\n\r\n<p>See you soon</p>\r\n"))
}

func TestNewSendGridSender_NoKey(t *testing.T) {
	s := NewSendGridSender("", nopLogger{})
	assert.Nil(t, s)
	assert.ErrorIs(t, s.Send(context.Background(), testMessage()), ErrNotConfigured)
}

func TestNewSendGridMessage(t *testing.T) {
	msg := testMessage()
	msg.To = []string{"a@x.test", "b@x.test"}
	m := newSendGridMessage(msg)

	assert.Equal(t, "hello@salon.test", m.From.Address)
	require.Len(t, m.Personalizations, 1)
	assert.Len(t, m.Personalizations[0].To, 2)
	require.Len(t, m.Content, 1)
	assert.Equal(t, "text/html", m.Content[0].Type)
}

func TestLogSender(t *testing.T) {
	assert.NoError(t, NewLogSender(nopLogger{}).Send(context.Background(), testMessage()))
}
