package reportcards

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/reparper/reparper/internal/fill"
)

// Handler exposes the report-card pipeline over HTTP.
type Handler struct {
	service *Service
	store   *RunStore
	logger  *zap.Logger
}

// NewHandler creates a handler.
func NewHandler(service *Service, store *RunStore, logger *zap.Logger) *Handler {
	return &Handler{service: service, store: store, logger: logger}
}

// RegisterRoutes registers report-card routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	reports := router.Group("/report-cards")
	{
		reports.POST("", h.Generate)
		reports.GET("/:id", h.GetRun)
		reports.GET("/:id/files/:name", h.DownloadFile)
		reports.GET("/:id/archive", h.DownloadArchive)
	}
}

// Generate handles POST /report-cards: a multipart upload of the class
// workbook plus the teacher's metadata fields.
func (h *Handler) Generate(c *gin.Context) {
	fileHeader, err := c.FormFile("workbook")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "workbook file is required"})
		return
	}
	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".xlsx") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "workbook must be an .xlsx file"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open uploaded workbook"})
		return
	}
	defer file.Close()

	workbook, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read uploaded workbook"})
		return
	}

	req := GenerateRequest{
		Workbook:    workbook,
		TeacherName: c.PostForm("teacher_name"),
		Grade:       c.PostForm("grade"),
		ClassNumber: c.PostForm("class_number"),
		Semester:    c.PostForm("semester"),
	}

	year, err := strconv.Atoi(c.PostForm("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year must be a number"})
		return
	}
	req.Year = year

	publishDate, err := time.Parse("2006-01-02", c.PostForm("publish_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "publish_date must be YYYY-MM-DD"})
		return
	}
	req.PublishDate = publishDate

	run, err := h.service.Generate(c.Request.Context(), req)
	if err != nil && run == nil {
		h.logger.Error("report card generation failed", zap.Error(err))
		status := http.StatusBadRequest
		if errors.Is(err, fill.ErrTooManyStudents) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		// Partial success: some documents failed, the rest are downloadable.
		h.logger.Warn("report card generation partially failed", zap.Error(err))
		run.Warnings = append(run.Warnings, err.Error())
	}

	c.JSON(http.StatusCreated, run)
}

// GetRun handles GET /report-cards/:id.
func (h *Handler) GetRun(c *gin.Context) {
	run, ok := h.lookupRun(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, run)
}

// DownloadFile handles GET /report-cards/:id/files/:name.
func (h *Handler) DownloadFile(c *gin.Context) {
	run, ok := h.lookupRun(c)
	if !ok {
		return
	}

	file, ok := run.File(c.Param("name"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+file.Name+`"`)
	c.Data(http.StatusOK, contentTypeFor(file.Name), file.Content)
}

// DownloadArchive handles GET /report-cards/:id/archive: every run output
// zipped into one download.
func (h *Handler) DownloadArchive(c *gin.Context) {
	run, ok := h.lookupRun(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, file := range run.Files {
		w, err := zw.Create(file.Name)
		if err == nil {
			_, err = w.Write(file.Content)
		}
		if err != nil {
			h.logger.Error("failed to build archive", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build archive"})
			return
		}
	}
	if err := zw.Close(); err != nil {
		h.logger.Error("failed to build archive", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build archive"})
		return
	}

	name := "report-cards-" + run.ID.String() + ".zip"
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "application/zip", buf.Bytes())
}

func (h *Handler) lookupRun(c *gin.Context) (*Run, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid run id"})
		return nil, false
	}

	run, ok := h.store.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found or expired"})
		return nil, false
	}
	return run, true
}

func contentTypeFor(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return "application/pdf"
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}
