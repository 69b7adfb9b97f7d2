package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-hrms/config"
	"github.com/oksasatya/go-hrms/pkg/mailer"
	mailtpl "github.com/oksasatya/go-hrms/pkg/mailer/templates"
)

type sent struct{ to, subject, text, html string }

type fakeSender struct {
	got []sent
	err error
}

func (f *fakeSender) Send(_ context.Context, to, subject, text, html string) error {
	if f.err != nil {
		return f.err
	}
	f.got = append(f.got, sent{to, subject, text, html})
	return nil
}

func encode(t *testing.T, job mailer.EmailJob) []byte {
	t.Helper()
	b, err := json.Marshal(job)
	require.NoError(t, err)
	return b
}

func TestEmailWorker_VerificationCode(t *testing.T) {
	sender := &fakeSender{}
	w := &EmailWorker{Sender: sender}
	cfg := &config.Config{AppName: "HRMS"}
	job := mailer.EmailJob{
		To:       "jane@mail.io",
		Template: mailtpl.VerificationCode,
		Data:     mailtpl.NewVerificationCodeData(cfg, "Jane Doe", "jane@mail.io", "482913", time.Now().Add(24*time.Hour)),
	}

	require.Equal(t, Ack, w.Process(context.Background(), encode(t, job)))
	require.Len(t, sender.got, 1)
	assert.Equal(t, "jane@mail.io", sender.got[0].to)
	assert.Contains(t, sender.got[0].subject, "482913")
	assert.Contains(t, sender.got[0].html, "482913")
}

func TestEmailWorker_LoginNotificationUsesUniversal(t *testing.T) {
	sender := &fakeSender{}
	w := &EmailWorker{Sender: sender}
	job := mailer.EmailJob{
		To:       "jane@mail.io",
		Template: mailtpl.LoginNotification,
		Data:     mailtpl.NewLoginNotificationData(&config.Config{}, "Jane Doe", "jane@mail.io", mailtpl.WithIP("203.0.113.7")),
	}

	require.Equal(t, Ack, w.Process(context.Background(), encode(t, job)))
	require.Len(t, sender.got, 1)
	assert.Equal(t, "New login to your account", sender.got[0].subject)
	assert.Contains(t, sender.got[0].html, "203.0.113.7")
}

func TestEmailWorker_Outcomes(t *testing.T) {
	w := &EmailWorker{Sender: &fakeSender{}}
	ctx := context.Background()

	assert.Equal(t, Reject, w.Process(ctx, []byte("{not json")))
	assert.Equal(t, Reject, w.Process(ctx, encode(t, mailer.EmailJob{Subject: "hi", Text: "body"})))
	assert.Equal(t, Reject, w.Process(ctx, encode(t, mailer.EmailJob{To: "a@b.io", Template: "does_not_exist"})))
	assert.Equal(t, Reject, w.Process(ctx, encode(t, mailer.EmailJob{To: "a@b.io", Subject: "no body"})))
	assert.Equal(t, Ack, w.Process(ctx, encode(t, mailer.EmailJob{To: "a@b.io", Subject: "hi", Text: "body"})))

	w.Sender = &fakeSender{err: errors.New("mailgun 502")}
	assert.Equal(t, Requeue, w.Process(ctx, encode(t, mailer.EmailJob{To: "a@b.io", Subject: "hi", Text: "body"})))
}
