package templates

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/oksasatya/go-hrms/config"
)

// DisplayLayout is how timestamps are printed in email bodies.
const DisplayLayout = "02 January 2006, 15:04"

// Data carries every field a template may reference. It travels through the
// queue as a map so the worker can patch fields before rendering.
type Data struct {
	Name           string
	Email          string
	RecipientEmail string
	Type           string

	AppName        string
	CompanyName    string
	CompanyAddress string
	LogoURL        string
	SupportURL     string
	PrivacyURL     string
	VerifyURL      string

	Code          string
	ExpiresAt     time.Time
	ExpiresAtText string

	IP        string
	UserAgent string
	Location  string
	TimeAt    time.Time
	Time      string
}

// Map flattens d into the shape EmailJob.Data carries.
func (d Data) Map() map[string]any {
	raw, _ := json.Marshal(d)
	m := map[string]any{}
	_ = json.Unmarshal(raw, &m)
	return m
}

type Option func(*Data)

func WithIP(ip string) Option        { return func(d *Data) { d.IP = strings.TrimSpace(ip) } }
func WithUserAgent(ua string) Option { return func(d *Data) { d.UserAgent = ua } }

func WithLocation(loc string) Option {
	return func(d *Data) {
		if loc = strings.TrimSpace(loc); loc != "" {
			d.Location = loc
		}
	}
}

// WithTime stamps the event time, printed in UTC until the worker localizes it.
func WithTime(t time.Time) Option {
	return func(d *Data) {
		d.TimeAt = t.UTC()
		d.Time = d.TimeAt.Format(DisplayLayout)
	}
}

func withExpiry(t time.Time) Option {
	return func(d *Data) {
		d.ExpiresAt = t.UTC()
		d.ExpiresAtText = d.ExpiresAt.Format(DisplayLayout)
	}
}

func newData(cfg *config.Config, kind, name, email string, opts []Option) Data {
	d := Data{
		Name:           name,
		Email:          email,
		RecipientEmail: email,
		Type:           kind,
		AppName:        cfg.AppName,
		CompanyName:    cfg.CompanyName,
		CompanyAddress: cfg.CompanyAddress,
		LogoURL:        cfg.LogoURL,
		SupportURL:     cfg.SupportURL,
		PrivacyURL:     cfg.PrivacyURL,
		VerifyURL:      cfg.VerifyEmailURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewVerificationCodeData(cfg *config.Config, name, email, code string, expiresAt time.Time, opts ...Option) map[string]any {
	d := newData(cfg, VerificationCode, name, email, append([]Option{withExpiry(expiresAt)}, opts...))
	d.Code = code
	return d.Map()
}

func NewLoginNotificationData(cfg *config.Config, name, email string, opts ...Option) map[string]any {
	return newData(cfg, LoginNotification, name, email, opts).Map()
}
