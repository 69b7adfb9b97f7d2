package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-hrms/internal/domain/entity"
	"github.com/oksasatya/go-hrms/internal/interface/middleware"
	"github.com/oksasatya/go-hrms/pkg/response"
)

const (
	maxAvatarBytes = 5 << 20
	// room for multipart boundaries and part headers
	multipartSlack = 64 << 10
)

type AccountService interface {
	GetCandidate(ctx context.Context, id int64) (*entity.Account, error)
	GetEmployer(ctx context.Context, id int64) (*entity.Account, error)
	UploadCandidateAvatar(ctx context.Context, id int64, r io.Reader, filename, contentType string) (string, error)
}

type AccountHandler struct {
	Svc    AccountService
	Logger *logrus.Logger
}

func NewAccountHandler(svc AccountService, logger *logrus.Logger) *AccountHandler {
	return &AccountHandler{Svc: svc, Logger: logger}
}

// GetCandidate GET /api/candidates/:id
func (h *AccountHandler) GetCandidate(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	acc, err := h.Svc.GetCandidate(c.Request.Context(), id)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, accountView(acc), "", nil)
}

// GetEmployer GET /api/employers/:id
func (h *AccountHandler) GetEmployer(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	acc, err := h.Svc.GetEmployer(c.Request.Context(), id)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, accountView(acc), "", nil)
}

// UploadAvatar POST /api/candidates/me/avatar (multipart field "file")
func (h *AccountHandler) UploadAvatar(c *gin.Context) {
	uid, ok := middleware.UserID(c)
	if !ok {
		response.Error[any](c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxAvatarBytes+multipartSlack)
	fh, err := c.FormFile("file")
	var tooBig *http.MaxBytesError
	if errors.As(err, &tooBig) || (err == nil && fh.Size > maxAvatarBytes) {
		avatarTooLarge(c)
		return
	}
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"file": "is required"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	defer f.Close()

	url, err := h.Svc.UploadCandidateAvatar(c.Request.Context(), uid, f, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"avatar_url": url}, "avatar updated", nil)
}

func avatarTooLarge(c *gin.Context) {
	response.Error[any](c, http.StatusRequestEntityTooLarge, "avatar too large", map[string]string{"file": "must be at most 5MB"})
}
