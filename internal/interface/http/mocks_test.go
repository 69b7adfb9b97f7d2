package handlers

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/oksasatya/go-hrms/internal/application"
	"github.com/oksasatya/go-hrms/internal/domain/entity"
)

type mockAuth struct{ mock.Mock }

func account(args mock.Arguments) *entity.Account {
	acc, _ := args.Get(0).(*entity.Account)
	return acc
}

func (m *mockAuth) RegisterEmployer(ctx context.Context, in application.EmployerRegistration) (*entity.Account, error) {
	args := m.Called(ctx, in)
	return account(args), args.Error(1)
}

func (m *mockAuth) RegisterCandidate(ctx context.Context, in application.CandidateRegistration) (*entity.Account, error) {
	args := m.Called(ctx, in)
	return account(args), args.Error(1)
}

func (m *mockAuth) VerifyEmail(ctx context.Context, userID int64, code string) error {
	return m.Called(ctx, userID, code).Error(0)
}

func (m *mockAuth) ResendVerificationCode(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *mockAuth) Login(ctx context.Context, email, password string) (*entity.Account, application.TokenPair, error) {
	args := m.Called(ctx, email, password)
	pair, _ := args.Get(1).(application.TokenPair)
	return account(args), pair, args.Error(2)
}

func (m *mockAuth) Refresh(ctx context.Context, refreshToken string) (application.TokenPair, int64, error) {
	args := m.Called(ctx, refreshToken)
	pair, _ := args.Get(0).(application.TokenPair)
	return pair, args.Get(1).(int64), args.Error(2)
}

func (m *mockAuth) Logout(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockAuth) UserExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type mockLoginNotifier struct{ mock.Mock }

func (m *mockLoginNotifier) SendLoginNotification(ctx context.Context, to application.Recipient, ip, userAgent string, at time.Time) error {
	return m.Called(ctx, to, ip, userAgent, at).Error(0)
}

type recordingAudit struct {
	mu   sync.Mutex
	logs []entity.AuditLog
}

func (r *recordingAudit) Insert(_ context.Context, l entity.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, l)
	return nil
}

func (r *recordingAudit) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.logs))
	for _, l := range r.logs {
		out = append(out, l.Action)
	}
	return out
}

type mockJobs struct{ mock.Mock }

func (m *mockJobs) Add(ctx context.Context, candidateID int64, in application.JobExperienceInput) (*entity.JobExperience, error) {
	args := m.Called(ctx, candidateID, in)
	j, _ := args.Get(0).(*entity.JobExperience)
	return j, args.Error(1)
}

func (m *mockJobs) FindByID(ctx context.Context, id int64) (*entity.JobExperience, error) {
	args := m.Called(ctx, id)
	j, _ := args.Get(0).(*entity.JobExperience)
	return j, args.Error(1)
}

func (m *mockJobs) FindAll(ctx context.Context) ([]entity.JobExperience, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]entity.JobExperience)
	return list, args.Error(1)
}

func (m *mockJobs) FindByCandidate(ctx context.Context, candidateID int64) ([]entity.JobExperience, error) {
	args := m.Called(ctx, candidateID)
	list, _ := args.Get(0).([]entity.JobExperience)
	return list, args.Error(1)
}

func (m *mockJobs) Search(ctx context.Context, q string, size int) ([]entity.JobExperience, error) {
	args := m.Called(ctx, q, size)
	list, _ := args.Get(0).([]entity.JobExperience)
	return list, args.Error(1)
}

type mockAccounts struct{ mock.Mock }

func (m *mockAccounts) GetCandidate(ctx context.Context, id int64) (*entity.Account, error) {
	args := m.Called(ctx, id)
	return account(args), args.Error(1)
}

func (m *mockAccounts) GetEmployer(ctx context.Context, id int64) (*entity.Account, error) {
	args := m.Called(ctx, id)
	return account(args), args.Error(1)
}

func (m *mockAccounts) UploadCandidateAvatar(ctx context.Context, id int64, r io.Reader, filename, contentType string) (string, error) {
	body, _ := io.ReadAll(r)
	args := m.Called(ctx, id, string(body), filename, contentType)
	return args.String(0), args.Error(1)
}
