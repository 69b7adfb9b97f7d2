package messaging

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/oksasatya/go-hrms/pkg/mailer"
	mailtpl "github.com/oksasatya/go-hrms/pkg/mailer/templates"
)

// field reads data[key] as a trimmed string; missing keys read as "".
func field(data map[string]any, key string) string {
	v, ok := data[key]
	if !ok || v == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

func setDefault(data map[string]any, key, value string) {
	if field(data, key) == "" {
		data[key] = value
	}
}

// normalize fills recipient fields from To and sends kinds without their own
// files (login notifications) through the universal layout.
func normalize(job *mailer.EmailJob) {
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	setDefault(job.Data, "Email", job.To)
	setDefault(job.Data, "RecipientEmail", job.To)

	if strings.EqualFold(job.Template, mailtpl.LoginNotification) {
		setDefault(job.Data, "Type", mailtpl.LoginNotification)
		job.Template = mailtpl.Universal
	}
}

func universalSubject(data map[string]any) string {
	switch strings.ToLower(field(data, "Type")) {
	case mailtpl.LoginNotification:
		return "New login to your account"
	case mailtpl.VerificationCode:
		return "Your email verification code"
	}
	return "Notification"
}

// placeRecipient looks the job's IP up once, fills Location when empty and
// rewrites the display times in the recipient's timezone. Lookup failures
// leave the UTC texts in place.
func placeRecipient(ctx context.Context, r mailtpl.GeoResolver, data map[string]any) {
	ip := field(data, "IP")
	if r == nil || ip == "" {
		return
	}
	g, err := r.Lookup(ctx, ip)
	if err != nil {
		return
	}
	setDefault(data, "Location", g.String())

	if g.Timezone == "" {
		return
	}
	loc, err := time.LoadLocation(g.Timezone)
	if err != nil {
		return
	}
	for src, dst := range map[string]string{"ExpiresAt": "ExpiresAtText", "TimeAt": "Time"} {
		if t, ok := asTime(data[src]); ok && !t.IsZero() {
			data[dst] = t.In(loc).Format(mailtpl.DisplayLayout + " MST")
		}
	}
}

// asTime accepts a time.Time or its JSON (RFC 3339) form.
func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, t)
		return parsed, err == nil
	}
	return time.Time{}, false
}
