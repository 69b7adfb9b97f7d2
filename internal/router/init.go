package router

import (
	"github.com/oksasatya/go-hrms/internal/application"
	"github.com/oksasatya/go-hrms/internal/container"
	"github.com/oksasatya/go-hrms/internal/infrastructure/messaging"
	pginfra "github.com/oksasatya/go-hrms/internal/infrastructure/postgres"
	"github.com/oksasatya/go-hrms/internal/infrastructure/search"
	handlers "github.com/oksasatya/go-hrms/internal/interface/http"
	"github.com/oksasatya/go-hrms/internal/router/modules"
	"github.com/oksasatya/go-hrms/pkg/helpers"
)

// notifier delivers both verification codes and login alerts.
type notifier interface {
	application.CodeNotifier
	handlers.LoginNotifier
}

type services struct {
	Auth     *application.AuthService
	Accounts *application.AccountService
	Jobs     *application.JobExperienceService
	Audit    *pginfra.AuditRepository
	Notifier notifier
}

func buildNotifier() notifier {
	cfg := container.GetConfig()
	if pub := container.GetRabbitPub(); pub != nil && cfg.MailSendEnabled {
		return messaging.NewEmailNotifier(pub, cfg)
	}
	return messaging.LogNotifier{Logger: container.GetLogger()}
}

func buildServices() services {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	users := pginfra.NewUserRepository(pool)
	note := buildNotifier()

	auth := &application.AuthService{
		Users:      users,
		Codes:      pginfra.NewVerificationCodeRepository(pool),
		Tx:         pginfra.NewTxManager(pool),
		Codegen:    helpers.OTPGenerator{},
		Notifier:   note,
		JWT:        container.GetJWT(),
		Logger:     logger,
		CodeTTL:    cfg.VerificationCodeTTL,
		SessionTTL: cfg.RefreshTTL,
	}
	accounts := &application.AccountService{Users: users, Logger: logger}
	jobs := &application.JobExperienceService{
		Users:       users,
		Experiences: pginfra.NewJobExperienceRepository(pool),
		Logger:      logger,
	}

	// Interface fields are only assigned for configured clients so nil checks in
	// the services keep working.
	if rdb := container.GetRedis(); rdb != nil {
		auth.Redis = rdb
		accounts.Redis = rdb
	}
	if gcs := container.GetGCS(); gcs != nil && cfg.GCSBucket != "" {
		accounts.Avatars = helpers.NewGCSUploader(gcs, cfg.GCSBucket)
	}
	if es := container.GetES(); es != nil {
		jobs.Index = search.NewJobExperienceIndex(es, cfg.ESJobExperiencesIndex)
	}

	return services{
		Auth:     auth,
		Accounts: accounts,
		Jobs:     jobs,
		Audit:    pginfra.NewAuditRepository(pool),
		Notifier: note,
	}
}

// InitModules builds every feature module from the container and registers
// it with the registry. Call once during startup, after the container is filled.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	jwt := container.GetJWT()
	rdb := container.GetRedis()
	svc := buildServices()

	cookies := helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure)
	authHandler := handlers.NewAuthHandler(svc.Auth, svc.Audit, svc.Notifier, cookies, logger)

	r.Add(modules.NewAuthModule(authHandler, jwt, rdb))
	r.Add(modules.NewJobExperienceModule(handlers.NewJobExperienceHandler(svc.Jobs, logger), rdb))
	r.Add(modules.NewAccountModule(handlers.NewAccountHandler(svc.Accounts, logger), jwt, rdb))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
