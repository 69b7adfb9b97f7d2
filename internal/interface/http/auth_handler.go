package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-hrms/internal/application"
	"github.com/oksasatya/go-hrms/internal/domain/entity"
	repo "github.com/oksasatya/go-hrms/internal/domain/repository"
	"github.com/oksasatya/go-hrms/internal/interface/middleware"
	"github.com/oksasatya/go-hrms/pkg/helpers"
	"github.com/oksasatya/go-hrms/pkg/response"
)

// AuthService is the slice of application.AuthService the handlers use.
type AuthService interface {
	RegisterEmployer(ctx context.Context, in application.EmployerRegistration) (*entity.Account, error)
	RegisterCandidate(ctx context.Context, in application.CandidateRegistration) (*entity.Account, error)
	VerifyEmail(ctx context.Context, userID int64, code string) error
	ResendVerificationCode(ctx context.Context, email string) error
	Login(ctx context.Context, email, password string) (*entity.Account, application.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (application.TokenPair, int64, error)
	Logout(ctx context.Context, userID int64) error
	UserExists(ctx context.Context, email string) (bool, error)
}

// LoginNotifier is told about every successful login.
type LoginNotifier interface {
	SendLoginNotification(ctx context.Context, to application.Recipient, ip, userAgent string, at time.Time) error
}

type AuthHandler struct {
	Svc      AuthService
	Audit    repo.AuditRepository
	Notifier LoginNotifier
	Cookies  *helpers.Manager
	Logger   *logrus.Logger
}

func NewAuthHandler(svc AuthService, audit repo.AuditRepository, notifier LoginNotifier, cookies *helpers.Manager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Audit: audit, Notifier: notifier, Cookies: cookies, Logger: logger}
}

type registerEmployerRequest struct {
	Email           string `json:"email" binding:"required,email,max=255"`
	Password        string `json:"password" binding:"required,pwd"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	CompanyName     string `json:"company_name" binding:"required,max=255"`
	Website         string `json:"website" binding:"required,url,max=255"`
	PhoneNumber     string `json:"phone_number" binding:"required,phone"`
}

type registerCandidateRequest struct {
	Email           string `json:"email" binding:"required,email,max=255"`
	Password        string `json:"password" binding:"required,pwd"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	FirstName       string `json:"first_name" binding:"required,max=100"`
	LastName        string `json:"last_name" binding:"required,max=100"`
	NationalID      string `json:"national_id" binding:"required,nationalid"`
	BirthYear       int    `json:"birth_year" binding:"required,gte=1900"`
}

type verifyRequest struct {
	UserID int64  `json:"user_id" binding:"required,gt=0"`
	Code   string `json:"code" binding:"required,max=64"`
}

type emailRequest struct {
	Email string `json:"email" form:"email" binding:"required,email"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterEmployer POST /api/auth/register/employer
func (h *AuthHandler) RegisterEmployer(c *gin.Context) {
	var req registerEmployerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}
	acc, err := h.Svc.RegisterEmployer(c.Request.Context(), application.EmployerRegistration{
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		CompanyName:     req.CompanyName,
		Website:         req.Website,
		PhoneNumber:     req.PhoneNumber,
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	h.audit(c, acc.User.ID, acc.User.Email, "register_employer", nil)
	response.Success(c, http.StatusCreated, accountView(acc), "employer registered, check your email for the verification code", nil)
}

// RegisterCandidate POST /api/auth/register/candidate
func (h *AuthHandler) RegisterCandidate(c *gin.Context) {
	var req registerCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}
	if req.BirthYear > time.Now().Year() {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"birth_year": "must not be in the future"})
		return
	}
	acc, err := h.Svc.RegisterCandidate(c.Request.Context(), application.CandidateRegistration{
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		NationalID:      req.NationalID,
		BirthYear:       req.BirthYear,
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	h.audit(c, acc.User.ID, acc.User.Email, "register_candidate", nil)
	response.Success(c, http.StatusCreated, accountView(acc), "candidate registered, check your email for the verification code", nil)
}

// Verify POST /api/auth/verify {user_id, code}
func (h *AuthHandler) Verify(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}
	if err := h.Svc.VerifyEmail(c.Request.Context(), req.UserID, req.Code); err != nil {
		_, reason := statusFor(err)
		h.audit(c, req.UserID, "", "verify_failed", map[string]any{"reason": reason})
		fail(c, h.Logger, err)
		return
	}
	h.audit(c, req.UserID, "", "verify_confirm", nil)
	response.Success[any](c, http.StatusOK, gin.H{"verified": true}, "email verified", nil)
}

// ResendVerification POST /api/auth/verify/resend {email}
func (h *AuthHandler) ResendVerification(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}
	if err := h.Svc.ResendVerificationCode(c.Request.Context(), req.Email); err != nil {
		fail(c, h.Logger, err)
		return
	}
	h.audit(c, 0, req.Email, "verify_resend", nil)
	response.Success[any](c, http.StatusAccepted, gin.H{"sent": true}, "verification code sent", nil)
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}

	acc, pair, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.audit(c, 0, req.Email, "login_failed", nil)
		fail(c, h.Logger, err)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	h.audit(c, acc.User.ID, acc.User.Email, "login_success", nil)

	if h.Notifier != nil {
		to := application.Recipient{UserID: acc.User.ID, Email: acc.User.Email, Name: acc.DisplayName()}
		if nErr := h.Notifier.SendLoginNotification(c.Request.Context(), to, middleware.ClientIP(c), c.GetHeader("User-Agent"), time.Now()); nErr != nil && h.Logger != nil {
			h.Logger.WithError(nErr).WithField("user_id", acc.User.ID).Warn("login notification failed")
		}
	}

	response.Success(c, http.StatusOK, accountView(acc), "login successful", gin.H{
		"access_expires_at":  pair.AccessTokenExpiry,
		"refresh_expires_at": pair.RefreshTokenExpiry,
	})
}

// Refresh POST /api/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	token, err := c.Cookie(helpers.RefreshCookie)
	if err != nil || token == "" {
		response.Error[any](c, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}
	pair, uid, err := h.Svc.Refresh(c.Request.Context(), token)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	h.audit(c, uid, "", "token_refresh", nil)
	response.Success[any](c, http.StatusOK, gin.H{"refreshed": true}, "token refreshed", gin.H{
		"access_expires_at":  pair.AccessTokenExpiry,
		"refresh_expires_at": pair.RefreshTokenExpiry,
	})
}

// Logout POST /api/auth/logout (auth required)
func (h *AuthHandler) Logout(c *gin.Context) {
	uid, ok := middleware.UserID(c)
	if !ok {
		response.Error[any](c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	if err := h.Svc.Logout(c.Request.Context(), uid); err != nil && h.Logger != nil {
		h.Logger.WithError(err).WithField("user_id", uid).Warn("drop session failed")
	}
	h.Cookies.Clear(c)
	h.audit(c, uid, c.GetString("userEmail"), "logout", nil)
	response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil)
}

// Exists GET /api/auth/exists?email=
func (h *AuthHandler) Exists(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		invalidPayload(c, err)
		return
	}
	ok, err := h.Svc.UserExists(c.Request.Context(), req.Email)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"exists": ok}, "", nil)
}

// audit records an auth event. Failures never affect the response.
func (h *AuthHandler) audit(c *gin.Context, userID int64, email, action string, metadata map[string]any) {
	if h.Audit == nil {
		return
	}
	err := h.Audit.Insert(c.Request.Context(), entity.AuditLog{
		UserID:    userID,
		Email:     email,
		Action:    action,
		IP:        middleware.ClientIP(c),
		UserAgent: c.GetHeader("User-Agent"),
		Metadata:  metadata,
	})
	if err != nil && h.Logger != nil {
		h.Logger.WithError(err).WithField("action", action).Warn("audit insert failed")
	}
}
