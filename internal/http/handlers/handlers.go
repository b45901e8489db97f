package handlers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/fupdash/backend/internal/db"
	"github.com/fupdash/backend/internal/export"
	"github.com/fupdash/backend/internal/i18n"
	"github.com/fupdash/backend/internal/ingest"
	"github.com/fupdash/backend/internal/service"
)

type Handler struct {
	Reports         *service.ReportService
	Store           db.DatasetStore
	Validator       *validator.Validate
	Logger          zerolog.Logger
	Location        *time.Location
	DefaultLanguage string
	RequestTimeout  time.Duration
}

func (h *Handler) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()
	if err := h.Store.Ping(ctx); err != nil {
		writeError(c, http.StatusServiceUnavailable, "STORE_ERROR", "Dataset store unavailable", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary Upload FUP sheet
// @Description Upload an .xlsx (sheet "FUP Report") or .csv export of shipment rows
// @Tags datasets
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "FUP workbook"
// @Success 201 {object} service.DatasetSummary
// @Failure 400 {object} map[string]any
// @Failure 422 {object} map[string]any
// @Router /api/datasets [post]
func (h *Handler) UploadDataset(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "file required", nil)
		return
	}
	if ingest.Format(file.Filename) == "" {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "file must be .xlsx, .xlsm or .csv", nil)
		return
	}
	f, err := file.Open()
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "cannot open upload", err.Error())
		return
	}
	defer f.Close()

	ctx, cancel := h.timeout(c)
	defer cancel()
	ds, err := h.Reports.Ingest(ctx, file.Filename, f)
	if err != nil {
		h.writeIngestError(c, err)
		return
	}
	c.JSON(http.StatusCreated, service.Describe(ds, h.labels(c, "")))
}

// @Summary Latest dataset
// @Tags datasets
// @Produce json
// @Success 200 {object} service.DatasetSummary
// @Failure 404 {object} map[string]any
// @Router /api/datasets/latest [get]
func (h *Handler) LatestDataset(c *gin.Context) {
	h.describe(c, service.LatestDataset)
}

// @Summary Dataset metadata and filter options
// @Tags datasets
// @Produce json
// @Param id path string true "dataset id"
// @Success 200 {object} service.DatasetSummary
// @Failure 404 {object} map[string]any
// @Router /api/datasets/{id} [get]
func (h *Handler) GetDataset(c *gin.Context) {
	h.describe(c, c.Param("id"))
}

// @Summary Delete dataset
// @Tags datasets
// @Param id path string true "dataset id"
// @Success 204
// @Failure 404 {object} map[string]any
// @Router /api/datasets/{id} [delete]
func (h *Handler) DeleteDataset(c *gin.Context) {
	ctx, cancel := h.timeout(c)
	defer cancel()
	if err := h.Store.Delete(ctx, c.Param("id")); err != nil {
		h.writeStoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Run the risk pipeline
// @Description Filter, group and sort a dataset
// @Tags views
// @Accept json
// @Produce json
// @Param id path string true "dataset id or latest"
// @Param request body ViewRequest false "view request"
// @Success 200 {object} service.Result
// @Failure 400 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/datasets/{id}/view [post]
func (h *Handler) View(c *gin.Context) {
	res, _, ok := h.run(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Export view as xlsx
// @Tags views
// @Accept json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "dataset id or latest"
// @Param request body ViewRequest false "view request"
// @Success 200 {file} file
// @Router /api/datasets/{id}/export [post]
func (h *Handler) Export(c *gin.Context) {
	res, labels, ok := h.run(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := export.Write(&buf, res, labels); err != nil {
		h.Logger.Error().Err(err).Msg("export failed")
		writeError(c, http.StatusInternalServerError, "EXPORT_ERROR", "Failed to build workbook", err.Error())
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+export.Filename(res.GeneratedAt)+`"`)
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}

func (h *Handler) run(c *gin.Context) (service.Result, i18n.Labels, bool) {
	var req ViewRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
			return service.Result{}, i18n.Labels{}, false
		}
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return service.Result{}, i18n.Labels{}, false
	}
	labels := h.labels(c, req.Lang)
	q, asOf, err := req.Query(labels, h.location())
	if err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return service.Result{}, i18n.Labels{}, false
	}

	ctx, cancel := h.timeout(c)
	defer cancel()
	ds, err := h.Reports.Dataset(ctx, c.Param("id"))
	if err != nil {
		h.writeStoreError(c, err)
		return service.Result{}, i18n.Labels{}, false
	}
	now := h.Reports.Now()
	if asOf != nil {
		now = *asOf
	}
	return h.Reports.Run(ds, q, now.In(h.location())), labels, true
}

func (h *Handler) describe(c *gin.Context, id string) {
	ctx, cancel := h.timeout(c)
	defer cancel()
	ds, err := h.Reports.Dataset(ctx, id)
	if err != nil {
		h.writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, service.Describe(ds, h.labels(c, c.Query("lang"))))
}

// labels prefers an explicit language, then Accept-Language.
func (h *Handler) labels(c *gin.Context, lang string) i18n.Labels {
	if lang != "" {
		return i18n.For(lang)
	}
	return i18n.Match(c.GetHeader("Accept-Language"), h.DefaultLanguage)
}

func (h *Handler) location() *time.Location {
	if h.Location == nil {
		return time.UTC
	}
	return h.Location
}

func (h *Handler) timeout(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.RequestTimeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), h.RequestTimeout)
}

func (h *Handler) writeIngestError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ingest.ErrSheetNotFound):
		writeError(c, http.StatusUnprocessableEntity, "SHEET_NOT_FOUND", "Sheet not found in workbook", err.Error())
	case errors.Is(err, ingest.ErrEmptySheet):
		writeError(c, http.StatusUnprocessableEntity, "SHEET_EMPTY", "Sheet has no data rows", err.Error())
	case errors.Is(err, service.ErrInvalidUpload):
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Cannot read upload", err.Error())
	default:
		h.Logger.Error().Err(err).Msg("ingest failed")
		writeError(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to store dataset", err.Error())
	}
}

func (h *Handler) writeStoreError(c *gin.Context, err error) {
	if errors.Is(err, db.ErrDatasetNotFound) {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "Dataset not found", nil)
		return
	}
	h.Logger.Error().Err(err).Msg("dataset store failed")
	writeError(c, http.StatusInternalServerError, "STORE_ERROR", "Dataset store failed", err.Error())
}

func writeError(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
