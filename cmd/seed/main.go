package main

import (
	"context"
	"errors"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-hrms/config"
	"github.com/oksasatya/go-hrms/internal/domain/entity"
	repo "github.com/oksasatya/go-hrms/internal/domain/repository"
	pginfra "github.com/oksasatya/go-hrms/internal/infrastructure/postgres"
	"github.com/oksasatya/go-hrms/pkg/helpers"
)

const demoPassword = "password123"

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), pginfra.PoolOptions{
		MaxConns:        cfg.DBMaxConns,
		MinConns:        cfg.DBMinConns,
		MaxConnLifetime: cfg.DBMaxConnLife,
		Logger:          logger,
	})
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to postgres")
	}
	defer pool.Close()

	users := pginfra.NewUserRepository(pool)
	jobs := pginfra.NewJobExperienceRepository(pool)
	tx := pginfra.NewTxManager(pool)

	hash, err := helpers.HashPassword(demoPassword)
	if err != nil {
		logger.WithError(err).Fatal("failed to hash password")
	}

	employerID, err := seedUser(ctx, users, "hr@acme.test", func(ctx context.Context, u *entity.User) error {
		e := &entity.Employer{CompanyName: "Acme Corp", Website: "https://acme.test", PhoneNumber: "+6281200000001", IsActive: true, IsEmailVerified: true}
		return users.CreateEmployer(ctx, u, e)
	}, hash)
	if err != nil {
		logger.WithError(err).Fatal("failed to seed employer")
	}
	logger.WithFields(logrus.Fields{"id": employerID, "email": "hr@acme.test", "password": demoPassword}).Info("seeded employer")

	candidateID, err := seedUser(ctx, users, "jane@candidate.test", func(ctx context.Context, u *entity.User) error {
		c := &entity.JobCandidate{FirstName: "Jane", LastName: "Doe", NationalID: "12345678901", BirthYear: 1994, IsActive: true, IsEmailVerified: true}
		return tx.WithinTx(ctx, func(ctx context.Context) error {
			if err := users.CreateCandidate(ctx, u, c); err != nil {
				return err
			}
			end := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)
			return jobs.Create(ctx, &entity.JobExperience{
				CandidateID:   u.ID,
				WorkplaceName: "Initech",
				Position:      "Backend Engineer",
				StartDate:     time.Date(2020, 2, 1, 0, 0, 0, 0, time.UTC),
				EndDate:       &end,
			})
		})
	}, hash)
	if err != nil {
		logger.WithError(err).Fatal("failed to seed candidate")
	}
	logger.WithFields(logrus.Fields{"id": candidateID, "email": "jane@candidate.test", "password": demoPassword}).Info("seeded candidate")
}

// seedUser creates the account once; later runs return the existing id.
func seedUser(ctx context.Context, users repo.UserRepository, email string, create func(ctx context.Context, u *entity.User) error, hash string) (int64, error) {
	existing, err := users.GetByEmail(ctx, email)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return 0, err
	}
	u := &entity.User{Email: email, Password: hash}
	if err := create(ctx, u); err != nil {
		return 0, err
	}
	return u.ID, nil
}
