package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/go-hrms/internal/domain/entity"
	"github.com/oksasatya/go-hrms/internal/domain/repository"
)

type JobExperienceRepository struct {
	pool Pool
}

func NewJobExperienceRepository(pool Pool) *JobExperienceRepository {
	return &JobExperienceRepository{pool: pool}
}

const selectJobExperience = `
		SELECT id, candidate_id, workplace_name, position, start_date, end_date, created_at
		FROM job_experiences
	`

func (r *JobExperienceRepository) Create(ctx context.Context, j *entity.JobExperience) error {
	row := conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO job_experiences (candidate_id, workplace_name, position, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, j.CandidateID, j.WorkplaceName, j.Position, j.StartDate, j.EndDate)

	return dbErr(row.Scan(&j.ID, &j.CreatedAt))
}

func (r *JobExperienceRepository) GetByID(ctx context.Context, id int64) (*entity.JobExperience, error) {
	j := &entity.JobExperience{}

	row := conn(ctx, r.pool).QueryRow(ctx, selectJobExperience+"WHERE id = $1", id)
	if err := scanJobExperience(row, j); err != nil {
		return nil, dbErr(err)
	}

	return j, nil
}

func (r *JobExperienceRepository) List(ctx context.Context) ([]entity.JobExperience, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, selectJobExperience+"ORDER BY id")
	if err != nil {
		return nil, dbErr(err)
	}
	return collectJobExperiences(rows)
}

func (r *JobExperienceRepository) ListByCandidate(ctx context.Context, candidateID int64) ([]entity.JobExperience, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, selectJobExperience+"WHERE candidate_id = $1 ORDER BY start_date DESC, id", candidateID)
	if err != nil {
		return nil, dbErr(err)
	}
	return collectJobExperiences(rows)
}

func scanJobExperience(row pgx.Row, j *entity.JobExperience) error {
	return row.Scan(&j.ID, &j.CandidateID, &j.WorkplaceName, &j.Position,
		&j.StartDate, &j.EndDate, &j.CreatedAt)
}

func collectJobExperiences(rows pgx.Rows) ([]entity.JobExperience, error) {
	defer rows.Close()

	out := make([]entity.JobExperience, 0)
	for rows.Next() {
		var j entity.JobExperience
		if err := scanJobExperience(rows, &j); err != nil {
			return nil, dbErr(err)
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, dbErr(err)
	}
	return out, nil
}

var _ repository.JobExperienceRepository = (*JobExperienceRepository)(nil)
