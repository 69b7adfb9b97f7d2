package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-hrms/internal/domain/entity"
)

const dateLayout = "2006-01-02"

// accountView renders an account without its password hash.
func accountView(acc *entity.Account) gin.H {
	out := gin.H{
		"id":         acc.User.ID,
		"email":      acc.User.Email,
		"kind":       acc.User.Kind,
		"created_at": acc.User.CreatedAt,
	}
	if e := acc.Employer; e != nil {
		out["company_name"] = e.CompanyName
		out["website"] = e.Website
		out["phone_number"] = e.PhoneNumber
		out["is_active"] = e.IsActive
		out["is_email_verified"] = e.IsEmailVerified
	}
	if cd := acc.Candidate; cd != nil {
		out["first_name"] = cd.FirstName
		out["last_name"] = cd.LastName
		out["birth_year"] = cd.BirthYear
		out["avatar_url"] = cd.AvatarURL
		out["is_active"] = cd.IsActive
		out["is_email_verified"] = cd.IsEmailVerified
	}
	return out
}

type jobExperienceView struct {
	ID            int64     `json:"id"`
	CandidateID   int64     `json:"candidate_id"`
	WorkplaceName string    `json:"workplace_name"`
	Position      string    `json:"position"`
	StartDate     string    `json:"start_date"`
	EndDate       *string   `json:"end_date"`
	CreatedAt     time.Time `json:"created_at"`
}

func toJobExperienceView(j entity.JobExperience) jobExperienceView {
	v := jobExperienceView{
		ID:            j.ID,
		CandidateID:   j.CandidateID,
		WorkplaceName: j.WorkplaceName,
		Position:      j.Position,
		StartDate:     j.StartDate.Format(dateLayout),
		CreatedAt:     j.CreatedAt,
	}
	if j.EndDate != nil {
		end := j.EndDate.Format(dateLayout)
		v.EndDate = &end
	}
	return v
}

func toJobExperienceViews(in []entity.JobExperience) []jobExperienceView {
	out := make([]jobExperienceView, 0, len(in))
	for _, j := range in {
		out = append(out, toJobExperienceView(j))
	}
	return out
}
