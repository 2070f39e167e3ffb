package mail_relay

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/salon-booking-service/internal/integrations/mailer"
	"github.com/m04kA/salon-booking-service/pkg/logger"
)

type fakeSender struct {
	got *mailer.Message
	err error
}

func (f *fakeSender) Send(_ context.Context, msg mailer.Message) error {
	f.got = &msg
	return f.err
}

const relayBody = `{
	"to": ["anna@example.com"],
	"subject": "Booking confirmed",
	"html": "<p>See you</p>",
	"smtp_host": "smtp.salon.test",
	"smtp_port": 587,
	"smtp_user": "mailer",
	"smtp_password": "pw",
	"from_email": "hello@salon.test",
	"from_name": "Salon"
}`

func send(sender *fakeSender, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/internal/mail/send", strings.NewReader(body))
	rec := httptest.NewRecorder()
	NewHandler(sender, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	sender := &fakeSender{}
	rec := send(sender, relayBody)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
	assert.Equal(t, 587, sender.got.SMTPPort)
	assert.Equal(t, []string{"anna@example.com"}, sender.got.To)
}

func TestHandle_Failures(t *testing.T) {
	rec := send(&fakeSender{}, `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)

	rec = send(&fakeSender{err: fmt.Errorf("%w: no recipients", mailer.ErrInvalidMessage)}, relayBody)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "no recipients")

	rec = send(&fakeSender{err: fmt.Errorf("%w: 535 auth failed", mailer.ErrDeliveryFailed)}, relayBody)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
}
