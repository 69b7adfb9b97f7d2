package messaging

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-hrms/config"
	"github.com/oksasatya/go-hrms/internal/application"
	"github.com/oksasatya/go-hrms/pkg/mailer"
	mailtpl "github.com/oksasatya/go-hrms/pkg/mailer/templates"
)

// Publisher puts a JSON message on the email queue.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// EmailNotifier enqueues templated emails for the email worker.
type EmailNotifier struct {
	Pub Publisher
	Cfg *config.Config
}

func NewEmailNotifier(pub Publisher, cfg *config.Config) *EmailNotifier {
	return &EmailNotifier{Pub: pub, Cfg: cfg}
}

func (n *EmailNotifier) SendVerificationCode(ctx context.Context, to application.Recipient, code string, expiresAt time.Time) error {
	return n.Pub.PublishJSON(ctx, mailer.EmailJob{
		ID:       uuid.NewString(),
		To:       to.Email,
		Template: mailtpl.VerificationCode,
		Data:     mailtpl.NewVerificationCodeData(n.Cfg, to.Name, to.Email, code, expiresAt),
	})
}

// SendLoginNotification tells the user about a new sign-in.
func (n *EmailNotifier) SendLoginNotification(ctx context.Context, to application.Recipient, ip, userAgent string, at time.Time) error {
	return n.Pub.PublishJSON(ctx, mailer.EmailJob{
		ID:       uuid.NewString(),
		To:       to.Email,
		Template: mailtpl.LoginNotification,
		Data: mailtpl.NewLoginNotificationData(n.Cfg, to.Name, to.Email,
			mailtpl.WithIP(ip), mailtpl.WithUserAgent(userAgent), mailtpl.WithTime(at)),
	})
}

// LogNotifier stands in when MAIL_SEND_ENABLED is false. Codes are only
// logged at debug level so they never reach production logs.
type LogNotifier struct {
	Logger *logrus.Logger
}

func (n LogNotifier) SendVerificationCode(_ context.Context, to application.Recipient, code string, expiresAt time.Time) error {
	n.Logger.WithFields(logrus.Fields{
		"user_id":    to.UserID,
		"email":      to.Email,
		"code":       code,
		"expires_at": expiresAt.UTC().Format(time.RFC3339),
	}).Debug("mail disabled, verification code not sent")
	return nil
}

func (n LogNotifier) SendLoginNotification(_ context.Context, to application.Recipient, ip, _ string, _ time.Time) error {
	n.Logger.WithFields(logrus.Fields{"user_id": to.UserID, "ip": ip}).Debug("mail disabled, login notification not sent")
	return nil
}

var (
	_ application.CodeNotifier = (*EmailNotifier)(nil)
	_ application.CodeNotifier = LogNotifier{}
)
