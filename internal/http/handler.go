package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/contractgen/internal/http/middleware"
	"github.com/nurpe/contractgen/internal/model"
	"github.com/nurpe/contractgen/internal/registry"
	"github.com/nurpe/contractgen/internal/render"
	"github.com/nurpe/contractgen/internal/service"
)

const (
	docxMime = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	xlsxMime = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	pdfMime  = "application/pdf"
)

type ContractService interface {
	CheckCompany(ctx context.Context, inn string, useBackup bool) (model.CompanyRecord, bool, error)
	Generate(ctx context.Context, input service.GenerateInput) (*service.DocumentResult, error)
	Preview(ctx context.Context, input service.GenerateInput) (*service.PreviewResult, error)
	PreviewPDF(ctx context.Context, input service.GenerateInput) (*service.DocumentResult, error)
	History(ctx context.Context, principal model.Principal) ([]model.HistoryRecord, error)
	DownloadFromHistory(ctx context.Context, principal model.Principal, id uuid.UUID) (*service.DocumentResult, error)
	ExportHistory(ctx context.Context, principal model.Principal) (*service.DocumentResult, error)
}

type ProfileService interface {
	List(ctx context.Context) ([]model.ExecutorProfile, error)
	Get(ctx context.Context, id uuid.UUID) (*model.ExecutorProfile, error)
	Create(ctx context.Context, principal model.Principal, input model.ExecutorProfile) (*model.ExecutorProfile, error)
	Update(ctx context.Context, principal model.Principal, id uuid.UUID, input model.ExecutorProfile) (*model.ExecutorProfile, error)
	SetDefault(ctx context.Context, principal model.Principal, id uuid.UUID) error
	Delete(ctx context.Context, principal model.Principal, id uuid.UUID) error
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (*service.LoginResult, error)
}

type Handler struct {
	contracts ContractService
	profiles  ProfileService
	auth      AuthService
	log       zerolog.Logger
}

func NewHandler(contracts ContractService, profiles ProfileService, auth AuthService, log zerolog.Logger) *Handler {
	return &Handler{contracts: contracts, profiles: profiles, auth: auth, log: log}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	router.GET("/healthz", h.health)
	router.POST("/auth/login", h.login)

	protected := router.Group("/")
	protected.Use(authMiddleware)
	protected.POST("/api/check-inn", h.checkINN)

	protected.POST("/contracts/generate", h.generate)
	protected.POST("/contracts/preview", h.preview)
	protected.POST("/contracts/preview/pdf", h.previewPDF)

	protected.GET("/history", h.history)
	protected.GET("/history/export", h.exportHistory)
	protected.GET("/history/:id/download", h.downloadFromHistory)

	protected.GET("/executor-profiles", h.listProfiles)
	protected.GET("/executor-profiles/:id", h.getProfile)

	admin := protected.Group("/", middleware.RequireAdmin())
	admin.POST("/executor-profiles", h.createProfile)
	admin.PUT("/executor-profiles/:id", h.updateProfile)
	admin.POST("/executor-profiles/:id/default", h.setDefaultProfile)
	admin.DELETE("/executor-profiles/:id", h.deleteProfile)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": result.AccessToken,
		"token_type":   "Bearer",
		"expires_at":   result.ExpiresAt.UTC().Format(time.RFC3339),
		"user": gin.H{
			"id":       result.User.ID,
			"username": result.User.Username,
			"role":     result.User.Role,
		},
	})
}

type checkINNRequest struct {
	INN       string `json:"inn"`
	UseBackup bool   `json:"use_api_fns"`
}

func (h *Handler) checkINN(c *gin.Context) {
	var req checkINNRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if strings.TrimSpace(req.INN) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "inn is required"})
		return
	}

	company, suggestBackup, err := h.contracts.CheckCompany(c.Request.Context(), req.INN, req.UseBackup)
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) && !errors.Is(err, registry.ErrMalformedResponse) {
			c.JSON(http.StatusNotFound, gin.H{
				"success":        false,
				"error":          "not_found",
				"suggest_backup": suggestBackup,
			})
			return
		}
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": company})
}

type contractRequest struct {
	INN               string                  `json:"inn"`
	UseBackup         bool                    `json:"use_api_fns"`
	ExecutorProfileID string                  `json:"executor_profile_id"`
	ContractNumber    string                  `json:"contract_number"`
	ContractDate      string                  `json:"contract_date"`
	Services          string                  `json:"services"`
	PricingServices   []model.ServiceLineItem `json:"pricing_services"`
	PackingPercentage string                  `json:"packing_percentage"`
	PrepaymentAmount  string                  `json:"prepayment_amount"`
	BankDetails       string                  `json:"bank_details"`
}

func (r contractRequest) complete() string {
	switch {
	case strings.TrimSpace(r.ContractNumber) == "":
		return "contract_number is required"
	case strings.TrimSpace(r.ContractDate) == "":
		return "contract_date is required"
	case strings.TrimSpace(r.Services) == "":
		return "services is required"
	case len(r.PricingServices) == 0:
		return "pricing_services must contain at least one item"
	}
	return ""
}

func (h *Handler) bindContract(c *gin.Context, strict bool) (service.GenerateInput, bool) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return service.GenerateInput{}, false
	}

	var req contractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return service.GenerateInput{}, false
	}
	if strings.TrimSpace(req.INN) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "inn is required"})
		return service.GenerateInput{}, false
	}
	if strict {
		if msg := req.complete(); msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": msg})
			return service.GenerateInput{}, false
		}
	}

	input := service.GenerateInput{
		Principal: principal,
		INN:       req.INN,
		UseBackup: req.UseBackup,
		Terms: model.ContractTerms{
			ContractNumber:    strings.TrimSpace(req.ContractNumber),
			ContractDate:      strings.TrimSpace(req.ContractDate),
			Services:          strings.TrimSpace(req.Services),
			PricingServices:   req.PricingServices,
			PackingPercentage: strings.TrimSpace(req.PackingPercentage),
			PrepaymentAmount:  strings.TrimSpace(req.PrepaymentAmount),
			BankDetails:       strings.TrimSpace(req.BankDetails),
		},
	}
	if raw := strings.TrimSpace(req.ExecutorProfileID); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid executor_profile_id"})
			return service.GenerateInput{}, false
		}
		input.ExecutorProfileID = &id
	}
	return input, true
}

func (h *Handler) generate(c *gin.Context) {
	input, ok := h.bindContract(c, true)
	if !ok {
		return
	}

	result, err := h.contracts.Generate(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	sendFile(c, docxMime, result)
}

func (h *Handler) preview(c *gin.Context) {
	input, ok := h.bindContract(c, false)
	if !ok {
		return
	}

	result, err := h.contracts.Preview(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"filename":            result.FileName,
		"company":             result.Company,
		"executor":            result.Executor,
		"context":             result.Context.Values(),
		"hourly_payment_text": result.Context.HourlyPaymentText,
	})
}

func (h *Handler) previewPDF(c *gin.Context) {
	input, ok := h.bindContract(c, false)
	if !ok {
		return
	}

	result, err := h.contracts.PreviewPDF(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	sendFile(c, pdfMime, result)
}

func (h *Handler) history(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	records, err := h.contracts.History(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": records})
}

func (h *Handler) downloadFromHistory(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	result, err := h.contracts.DownloadFromHistory(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	sendFile(c, docxMime, result)
}

func (h *Handler) exportHistory(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	result, err := h.contracts.ExportHistory(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	sendFile(c, xlsxMime, result)
}

func (h *Handler) listProfiles(c *gin.Context) {
	profiles, err := h.profiles.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": profiles})
}

func (h *Handler) getProfile(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	profile, err := h.profiles.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": profile})
}

func (h *Handler) createProfile(c *gin.Context) {
	principal, _ := middleware.MustPrincipal(c)
	var req model.ExecutorProfile
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.profiles.Create(c.Request.Context(), principal, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": profile})
}

func (h *Handler) updateProfile(c *gin.Context) {
	principal, _ := middleware.MustPrincipal(c)
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req model.ExecutorProfile
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.profiles.Update(c.Request.Context(), principal, id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": profile})
}

func (h *Handler) setDefaultProfile(c *gin.Context) {
	principal, _ := middleware.MustPrincipal(c)
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.profiles.SetDefault(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) deleteProfile(c *gin.Context) {
	principal, _ := middleware.MustPrincipal(c)
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.profiles.Delete(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, registry.ErrInvalidTaxID):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, registry.ErrMalformedResponse):
		h.log.Error().Err(err).Msg("registry returned malformed data")
		c.JSON(http.StatusBadGateway, gin.H{"error": "company registry returned malformed data"})
	case errors.Is(err, service.ErrNotFound), errors.Is(err, registry.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case errors.Is(err, render.ErrTemplateMissing):
		h.log.Error().Err(err).Msg("contract template is missing")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "contract template is missing"})
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

func sendFile(c *gin.Context, mime string, result *service.DocumentResult) {
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, mime, result.Content)
}
