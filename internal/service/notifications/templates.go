package notifications

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/m04kA/salon-booking-service/internal/domain"
)

// Event тип уведомления
type Event string

const (
	EventBookingCreated   Event = "booking_created"
	EventBookingConfirmed Event = "booking_confirmed"
	EventBookingCancelled Event = "booking_cancelled"
)

// Audience получатель копии письма
type Audience string

const (
	AudienceCustomer Audience = "customer"
	AudienceAdmin    Audience = "admin"
)

const layout = `{{define "layout"}}<!DOCTYPE html>
<html><body style="font-family:Arial,sans-serif;color:#111827;margin:0;padding:24px;">
<div style="max-width:560px;margin:0 auto;">
<h2 style="color:{{.Branding.PrimaryColor}};margin-bottom:4px;">{{.Branding.SalonName}}</h2>
{{if .Branding.Tagline}}<p style="color:#6b7280;margin-top:0;">{{.Branding.Tagline}}</p>{{end}}
{{template "content" .}}
<table style="border-collapse:collapse;margin:16px 0;">
<tr><td style="padding:4px 12px 4px 0;color:#6b7280;">Service</td><td>{{.Booking.ServiceName}}</td></tr>
<tr><td style="padding:4px 12px 4px 0;color:#6b7280;">Date</td><td>{{.DateText}}</td></tr>
<tr><td style="padding:4px 12px 4px 0;color:#6b7280;">Time</td><td>{{.Booking.StartTime}} - {{.EndTime}}</td></tr>
<tr><td style="padding:4px 12px 4px 0;color:#6b7280;">Price</td><td>{{printf "%.2f" .Booking.ServicePrice}}</td></tr>
</table>
{{if .Contact.Address}}<p style="color:#6b7280;">{{.Contact.Address}}</p>{{end}}
{{if .Contact.Phone}}<p style="color:#6b7280;">{{.Contact.Phone}}</p>{{end}}
</div></body></html>{{end}}`

var contents = map[Event]map[Audience]string{
	EventBookingCreated: {
		AudienceCustomer: `{{define "content"}}<p>Hello {{.Booking.CustomerName}},</p>
<p>Your appointment is booked. We look forward to seeing you.</p>{{end}}`,
		AudienceAdmin: `{{define "content"}}<p>New booking #{{.Booking.ID}} from {{.Booking.CustomerName}}
({{.Booking.CustomerEmail}}{{if .Booking.CustomerPhone}}, {{.Booking.CustomerPhone}}{{end}}).</p>
{{if .Booking.Notes}}<p>Notes: {{deref .Booking.Notes}}</p>{{end}}{{end}}`,
	},
	EventBookingConfirmed: {
		AudienceCustomer: `{{define "content"}}<p>Hello {{.Booking.CustomerName}},</p>
<p>Your appointment has been confirmed.</p>{{end}}`,
		AudienceAdmin: `{{define "content"}}<p>Booking #{{.Booking.ID}} for {{.Booking.CustomerName}} is now confirmed.</p>{{end}}`,
	},
	EventBookingCancelled: {
		AudienceCustomer: `{{define "content"}}<p>Hello {{.Booking.CustomerName}},</p>
<p>Your appointment has been cancelled.</p>
{{if .Booking.CancellationReason}}<p>Reason: {{deref .Booking.CancellationReason}}</p>{{end}}{{end}}`,
		AudienceAdmin: `{{define "content"}}<p>Booking #{{.Booking.ID}} for {{.Booking.CustomerName}} was cancelled.</p>
{{if .Booking.CancellationReason}}<p>Reason: {{deref .Booking.CancellationReason}}</p>{{end}}{{end}}`,
	},
}

var subjects = map[Event]map[Audience]string{
	EventBookingCreated: {
		AudienceCustomer: "Your appointment at %s",
		AudienceAdmin:    "New booking at %s",
	},
	EventBookingConfirmed: {
		AudienceCustomer: "Appointment confirmed at %s",
		AudienceAdmin:    "Booking confirmed at %s",
	},
	EventBookingCancelled: {
		AudienceCustomer: "Appointment cancelled at %s",
		AudienceAdmin:    "Booking cancelled at %s",
	},
}

var funcs = template.FuncMap{
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
}

// templates разбираются один раз при старте, ошибка шаблона ломает запуск
var templates = mustParse()

func mustParse() map[Event]map[Audience]*template.Template {
	out := make(map[Event]map[Audience]*template.Template, len(contents))
	for event, byAudience := range contents {
		out[event] = make(map[Audience]*template.Template, len(byAudience))
		for audience, content := range byAudience {
			t := template.Must(template.New(string(event) + "_" + string(audience)).Funcs(funcs).Parse(layout))
			out[event][audience] = template.Must(t.Parse(content))
		}
	}
	return out
}

type templateData struct {
	Booking  *domain.Booking
	Branding domain.Branding
	Contact  domain.ContactInfo
	DateText string
	EndTime  string
}

// render возвращает тему и HTML тело письма
func render(event Event, audience Audience, booking *domain.Booking, settings *domain.SiteSettings) (string, string, error) {
	t, ok := templates[event][audience]
	if !ok {
		return "", "", fmt.Errorf("no template for %s/%s", event, audience)
	}

	endTime, err := booking.EndTime()
	if err != nil {
		return "", "", fmt.Errorf("booking end time: %w", err)
	}

	branding := settings.Branding
	if strings.TrimSpace(branding.SalonName) == "" {
		branding.SalonName = domain.DefaultSiteSettings().Branding.SalonName
	}

	var buf bytes.Buffer
	err = t.ExecuteTemplate(&buf, "layout", templateData{
		Booking:  booking,
		Branding: branding,
		Contact:  settings.Contact,
		DateText: booking.BookingDate.Format("Monday, 2 January 2006"),
		EndTime:  endTime.String(),
	})
	if err != nil {
		return "", "", fmt.Errorf("execute template: %w", err)
	}

	return fmt.Sprintf(subjects[event][audience], branding.SalonName), buf.String(), nil
}
