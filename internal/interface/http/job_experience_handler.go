package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-hrms/internal/application"
	"github.com/oksasatya/go-hrms/internal/domain/entity"
	"github.com/oksasatya/go-hrms/pkg/response"
)

type JobExperienceService interface {
	Add(ctx context.Context, candidateID int64, in application.JobExperienceInput) (*entity.JobExperience, error)
	FindByID(ctx context.Context, id int64) (*entity.JobExperience, error)
	FindAll(ctx context.Context) ([]entity.JobExperience, error)
	FindByCandidate(ctx context.Context, candidateID int64) ([]entity.JobExperience, error)
	Search(ctx context.Context, q string, size int) ([]entity.JobExperience, error)
}

type JobExperienceHandler struct {
	Svc    JobExperienceService
	Logger *logrus.Logger
}

func NewJobExperienceHandler(svc JobExperienceService, logger *logrus.Logger) *JobExperienceHandler {
	return &JobExperienceHandler{Svc: svc, Logger: logger}
}

type addJobExperienceRequest struct {
	WorkplaceName string `json:"workplace_name" binding:"required,max=255"`
	Position      string `json:"position" binding:"required,max=255"`
	StartDate     string `json:"start_date" binding:"required"`
	EndDate       string `json:"end_date"`
}

func (r addJobExperienceRequest) input() (application.JobExperienceInput, map[string]string) {
	in := application.JobExperienceInput{WorkplaceName: r.WorkplaceName, Position: r.Position}
	details := map[string]string{}
	start, err := time.Parse(dateLayout, r.StartDate)
	if err != nil {
		details["start_date"] = "must be a date in YYYY-MM-DD format"
	}
	in.StartDate = start
	if r.EndDate != "" {
		end, err := time.Parse(dateLayout, r.EndDate)
		if err != nil {
			details["end_date"] = "must be a date in YYYY-MM-DD format"
		}
		in.EndDate = &end
	}
	return in, details
}

// Add POST /api/auth/add?id={candidateId}
func (h *JobExperienceHandler) Add(c *gin.Context) {
	candidateID, ok := queryID(c, "id")
	if !ok {
		return
	}
	var req addJobExperienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}
	in, details := req.input()
	if len(details) > 0 {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", details)
		return
	}

	j, err := h.Svc.Add(c.Request.Context(), candidateID, in)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, toJobExperienceView(*j), "job experience added", nil)
}

// FindByID GET /api/auth/findById?id={id}
func (h *JobExperienceHandler) FindByID(c *gin.Context) {
	id, ok := queryID(c, "id")
	if !ok {
		return
	}
	j, err := h.Svc.FindByID(c.Request.Context(), id)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toJobExperienceView(*j), "", nil)
}

// FindAll GET /api/auth/findAll
func (h *JobExperienceHandler) FindAll(c *gin.Context) {
	list, err := h.Svc.FindAll(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toJobExperienceViews(list), "", gin.H{"count": len(list)})
}

// ListByCandidate GET /api/candidates/:id/experiences
func (h *JobExperienceHandler) ListByCandidate(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	list, err := h.Svc.FindByCandidate(c.Request.Context(), id)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toJobExperienceViews(list), "", gin.H{"count": len(list)})
}

// Search GET /api/job-experiences/search?q=&size=
func (h *JobExperienceHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.Query("size"))
	list, err := h.Svc.Search(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toJobExperienceViews(list), "", gin.H{"count": len(list)})
}
