package application

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/oksasatya/go-hrms/internal/domain/entity"
	repo "github.com/oksasatya/go-hrms/internal/domain/repository"
	"github.com/oksasatya/go-hrms/pkg/helpers"
)

func init() { helpers.PasswordCost = 4 } // bcrypt.MinCost keeps the suite fast

// store is an in-memory stand-in for the Postgres schema.
type store struct {
	mu         sync.Mutex
	nextID     int64
	users      map[int64]entity.User
	employers  map[int64]entity.Employer
	candidates map[int64]entity.JobCandidate
	codes      []entity.VerificationCode
	jobs       []entity.JobExperience
}

func newStore() *store {
	return &store{
		users:      map[int64]entity.User{},
		employers:  map[int64]entity.Employer{},
		candidates: map[int64]entity.JobCandidate{},
	}
}

func (s *store) id() int64 {
	s.nextID++
	return s.nextID
}

type fakeUsers struct{ *store }

func (f fakeUsers) insert(u *entity.User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return fmt.Errorf("%w: users_email_key", repo.ErrDuplicate)
		}
	}
	u.ID = f.id()
	u.CreatedAt, u.UpdatedAt = time.Now(), time.Now()
	f.users[u.ID] = *u
	return nil
}

func (f fakeUsers) CreateEmployer(_ context.Context, u *entity.User, e *entity.Employer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u.Kind = entity.KindEmployer
	if err := f.insert(u); err != nil {
		return err
	}
	e.UserID = u.ID
	f.employers[u.ID] = *e
	return nil
}

func (f fakeUsers) CreateCandidate(_ context.Context, u *entity.User, c *entity.JobCandidate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u.Kind = entity.KindJobCandidate
	for _, existing := range f.candidates {
		if existing.NationalID == c.NationalID {
			return fmt.Errorf("%w: job_candidates_national_id_key", repo.ErrDuplicateNationalID)
		}
	}
	if err := f.insert(u); err != nil {
		return err
	}
	c.UserID = u.ID
	f.candidates[u.ID] = *c
	return nil
}

func (f fakeUsers) GetByID(_ context.Context, id int64) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &u, nil
}

func (f fakeUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f fakeUsers) GetEmployer(_ context.Context, id int64) (*entity.Employer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.employers[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &e, nil
}

func (f fakeUsers) GetCandidate(_ context.Context, id int64) (*entity.JobCandidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.candidates[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &c, nil
}

func (f fakeUsers) UpdateEmployer(_ context.Context, e *entity.Employer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.employers[e.UserID]; !ok {
		return repo.ErrNotFound
	}
	f.employers[e.UserID] = *e
	return nil
}

func (f fakeUsers) UpdateCandidate(_ context.Context, c *entity.JobCandidate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.candidates[c.UserID]; !ok {
		return repo.ErrNotFound
	}
	f.candidates[c.UserID] = *c
	return nil
}

type fakeCodes struct{ *store }

func (f fakeCodes) Create(_ context.Context, v *entity.VerificationCode) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	v.ID = f.id()
	v.CreatedAt = time.Now()
	f.codes = append(f.codes, *v)
	return nil
}

func (f fakeCodes) GetByUserIDAndCode(_ context.Context, userID int64, code string) (*entity.VerificationCode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.codes) - 1; i >= 0; i-- {
		if f.codes[i].UserID == userID && f.codes[i].Code == code {
			v := f.codes[i]
			return &v, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f fakeCodes) Update(_ context.Context, v *entity.VerificationCode) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.codes {
		if f.codes[i].ID == v.ID {
			f.codes[i] = *v
			return nil
		}
	}
	return repo.ErrNotFound
}

func (f fakeCodes) forUser(userID int64) []entity.VerificationCode {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.VerificationCode
	for _, v := range f.codes {
		if v.UserID == userID {
			out = append(out, v)
		}
	}
	return out
}

type fakeJobs struct{ *store }

func (f fakeJobs) Create(_ context.Context, j *entity.JobExperience) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	j.ID = f.id()
	j.CreatedAt = time.Now()
	f.jobs = append(f.jobs, *j)
	return nil
}

func (f fakeJobs) GetByID(_ context.Context, id int64) (*entity.JobExperience, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, j := range f.jobs {
		if j.ID == id {
			return &j, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f fakeJobs) List(_ context.Context) ([]entity.JobExperience, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.JobExperience{}, f.jobs...), nil
}

func (f fakeJobs) ListByCandidate(_ context.Context, candidateID int64) ([]entity.JobExperience, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []entity.JobExperience{}
	for _, j := range f.jobs {
		if j.CandidateID == candidateID {
			out = append(out, j)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].StartDate.After(out[b].StartDate) })
	return out, nil
}

// passthroughTx runs fn directly; atomicity is covered by the postgres tests.
type passthroughTx struct{ calls int }

func (p *passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	p.calls++
	return fn(ctx)
}

type fixedCode string

func (c fixedCode) Generate() (string, error) { return string(c), nil }

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) SendVerificationCode(ctx context.Context, to Recipient, code string, expiresAt time.Time) error {
	return m.Called(ctx, to, code, expiresAt).Error(0)
}

type fakeAvatars struct {
	path, contentType string
	body              []byte
	err               error
}

func (f *fakeAvatars) Upload(_ context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.path, f.contentType = objectPath, contentType
	f.body, _ = io.ReadAll(r)
	return "https://storage.googleapis.com/bucket/" + objectPath, nil
}

type fakeIndex struct {
	put     []entity.JobExperience
	putErr  error
	results []entity.JobExperience
	size    int
}

func (f *fakeIndex) Put(_ context.Context, j entity.JobExperience) error {
	f.put = append(f.put, j)
	return f.putErr
}

func (f *fakeIndex) Search(_ context.Context, _ string, size int) ([]entity.JobExperience, error) {
	f.size = size
	return f.results, nil
}
