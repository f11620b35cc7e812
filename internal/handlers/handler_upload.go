package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/partnerdesk/inventory_ingest_app/internal/apperrors"
	portssvc "github.com/partnerdesk/inventory_ingest_app/internal/core/ports/services"
	"github.com/partnerdesk/inventory_ingest_app/internal/dto"
	"github.com/partnerdesk/inventory_ingest_app/internal/middleware"
)

// uploadHandler handles HTTP requests related to file uploads.
type uploadHandler struct {
	uploadService portssvc.UploadSvcFacade
}

// newUploadHandler creates a new uploadHandler.
func newUploadHandler(uploadService portssvc.UploadSvcFacade) *uploadHandler {
	return &uploadHandler{uploadService: uploadService}
}

// submitUpload ingests one uploaded file synchronously. The request is
// multipart: a "file" part with the payload and a "manifest" part carrying
// the JSON-encoded dto.SubmitUploadRequest.
func (h *uploadHandler) submitUpload(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	uploaderUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Uploader user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		logger.Warn("Upload request missing file part", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Multipart 'file' part is required"})
		return
	}

	manifest := c.PostForm("manifest")
	if manifest == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Multipart 'manifest' part is required"})
		return
	}
	var req dto.SubmitUploadRequest
	if err := json.Unmarshal([]byte(manifest), &req); err != nil {
		logger.Warn("Failed to decode upload manifest", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid manifest format"})
		return
	}
	if err := binding.Validator.ValidateStruct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()
	fileBytes, err := io.ReadAll(file)
	if err != nil {
		logger.Error("Failed to read uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}

	job, err := h.uploadService.SubmitUpload(c.Request.Context(), fileHeader.Filename, fileBytes, req, uploaderUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to submit upload", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process upload"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToUploadJobResponse(job))
}

// getUploadJob returns a job with its row outcomes and company matches.
func (h *uploadHandler) getUploadJob(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	uploadJobID := c.Param("uploadID")

	job, err := h.uploadService.GetUploadJob(c.Request.Context(), uploadJobID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Upload job not found"})
			return
		}
		logger.Error("Failed to get upload job", slog.String("upload_job_id", uploadJobID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve upload job"})
		return
	}

	c.JSON(http.StatusOK, dto.ToUploadJobResponse(job))
}

// resolveCompanyMatch manually resolves an unresolved company match.
func (h *uploadHandler) resolveCompanyMatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	uploadJobID := c.Param("uploadID")

	var req dto.ResolveCompanyMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for resolveCompanyMatch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	match, err := h.uploadService.ResolveCompanyMatch(c.Request.Context(), uploadJobID, req, requestingUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to resolve company match", slog.String("upload_job_id", uploadJobID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve company match"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCompanyMatchResponse(match))
}

// registerUploadRoutes registers all upload-related routes.
func registerUploadRoutes(rg *gin.RouterGroup, uploadService portssvc.UploadSvcFacade, uploadRateLimit string) {
	h := newUploadHandler(uploadService)

	// Uploads are heavier than normal requests; cap submissions per IP.
	rate, err := limiter.NewRateFromFormatted(uploadRateLimit)
	if err != nil {
		rate, _ = limiter.NewRateFromFormatted("10-M")
	}
	ipLimiter := limiter.New(memory.NewStore(), rate)

	uploads := rg.Group("/uploads")
	{
		uploads.POST("", middleware.RateLimit(ipLimiter), h.submitUpload)
		uploads.GET("/:uploadID", h.getUploadJob)
		uploads.POST("/:uploadID/matches", h.resolveCompanyMatch)
	}
}
