package messaging

import (
	"context"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/go-hrms/pkg/mailer"
	mailtpl "github.com/oksasatya/go-hrms/pkg/mailer/templates"
)

type stubResolver struct {
	geo   mailtpl.Geo
	err   error
	calls int
}

func (s *stubResolver) Lookup(context.Context, string) (mailtpl.Geo, error) {
	s.calls++
	return s.geo, s.err
}

func TestNormalize_LoginNotificationUsesUniversal(t *testing.T) {
	job := mailer.EmailJob{To: "a@b.io", Template: "login_notification"}
	normalize(&job)

	assert.Equal(t, mailtpl.Universal, job.Template)
	assert.Equal(t, mailtpl.LoginNotification, job.Data["Type"])
	assert.Equal(t, "a@b.io", job.Data["Email"])
	assert.Equal(t, "a@b.io", job.Data["RecipientEmail"])
	assert.Equal(t, "New login to your account", universalSubject(job.Data))
}

func TestNormalize_KeepsDedicatedTemplates(t *testing.T) {
	job := mailer.EmailJob{To: "a@b.io", Template: mailtpl.VerificationCode, Data: map[string]any{"Email": "other@b.io"}}
	normalize(&job)

	assert.Equal(t, mailtpl.VerificationCode, job.Template)
	assert.Equal(t, "other@b.io", job.Data["Email"])
	assert.Equal(t, "Notification", universalSubject(map[string]any{}))
}

func TestPlaceRecipient(t *testing.T) {
	exp := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	data := map[string]any{"IP": "1.2.3.4", "ExpiresAt": exp.Format(time.RFC3339)}
	r := &stubResolver{geo: mailtpl.Geo{City: "Jakarta", Country: "Indonesia", Timezone: "Asia/Jakarta"}}

	placeRecipient(context.Background(), r, data)

	assert.Equal(t, 1, r.calls)
	assert.Equal(t, "01 March 2024, 19:00 WIB", data["ExpiresAtText"])
	assert.Equal(t, "Jakarta, Indonesia", data["Location"])
	assert.NotContains(t, data, "Time")
}

func TestPlaceRecipient_LookupFails(t *testing.T) {
	data := map[string]any{"IP": "1.2.3.4", "ExpiresAt": time.Now().Format(time.RFC3339), "ExpiresAtText": "utc text"}
	placeRecipient(context.Background(), &stubResolver{err: assert.AnError}, data)

	assert.Equal(t, "utc text", data["ExpiresAtText"])
	assert.NotContains(t, data, "Location")
}

func TestPlaceRecipient_NoIP(t *testing.T) {
	r := &stubResolver{}
	placeRecipient(context.Background(), r, map[string]any{})
	assert.Zero(t, r.calls)
}
