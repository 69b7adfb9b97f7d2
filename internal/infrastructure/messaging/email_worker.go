package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-hrms/pkg/helpers"
	"github.com/oksasatya/go-hrms/pkg/mailer"
	mailtpl "github.com/oksasatya/go-hrms/pkg/mailer/templates"
)

// Outcome tells the consumer how to settle a delivery.
type Outcome int

const (
	Ack Outcome = iota
	Reject
	Requeue
)

// EmailWorker renders queued EmailJobs and hands them to a Sender.
type EmailWorker struct {
	Sender      mailer.Sender
	Resolver    mailtpl.GeoResolver
	Logger      logrus.FieldLogger
	SendTimeout time.Duration
}

// Process handles one message body. Bad payloads and render failures are
// rejected for good; send failures are requeued.
func (w *EmailWorker) Process(ctx context.Context, body []byte) Outcome {
	var job mailer.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		helpers.LogError(w.Logger, "bad email message", err, nil)
		return Reject
	}
	if strings.TrimSpace(job.To) == "" {
		helpers.LogError(w.Logger, "email message without recipient", nil, logrus.Fields{"template": job.Template, "job_id": job.ID})
		return Reject
	}

	subject, text, html, err := w.render(ctx, &job)
	if err != nil {
		helpers.LogError(w.Logger, "render email failed", err, logrus.Fields{"template": job.Template, "job_id": job.ID})
		return Reject
	}

	timeout := w.SendTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	c, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := w.Sender.Send(c, job.To, subject, text, html); err != nil {
		helpers.LogError(w.Logger, "send email failed", err, logrus.Fields{"template": job.Template, "job_id": job.ID})
		return Requeue
	}
	return Ack
}

func (w *EmailWorker) render(ctx context.Context, job *mailer.EmailJob) (subject, text, html string, err error) {
	if job.Template == "" {
		if job.Subject == "" || (job.Text == "" && job.HTML == "") {
			return "", "", "", fmt.Errorf("raw email needs a subject and a body")
		}
		return job.Subject, job.Text, job.HTML, nil
	}

	normalize(job)
	placeRecipient(ctx, w.Resolver, job.Data)

	if !strings.EqualFold(job.Template, mailtpl.Universal) {
		return mailtpl.Render(job.Template, job.Data)
	}
	html, err = mailtpl.RenderHTML(mailtpl.Universal, job.Data)
	if err != nil {
		return "", "", "", err
	}
	return universalSubject(job.Data), "", html, nil
}

// Run settles deliveries until the channel closes or ctx is done.
func (w *EmailWorker) Run(ctx context.Context, deliveries <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		case d, ok := <-deliveries:
			if !ok {
				return
			}
			switch w.Process(ctx, d.Body) {
			case Ack:
				_ = d.Ack(false)
			case Reject:
				_ = d.Nack(false, false)
			case Requeue:
				_ = d.Nack(false, true)
			}
		}
	}
}
