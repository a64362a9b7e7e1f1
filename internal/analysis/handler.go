package analysis

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cv-analyzer-backend/internal/extract"
	"cv-analyzer-backend/internal/shared/metrics"
	"cv-analyzer-backend/internal/shared/server/respond"
)

const defaultMaxUploadBytes = 10 << 20 // 10MB

// Handler wires the analyze endpoint to the service.
type Handler struct {
	Svc            *Service
	MaxUploadBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyze", h.analyze)
}

func (h *Handler) analyze(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)

	fileHeader, err := c.FormFile("cv_file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "No CV file uploaded")
		return
	}
	if strings.TrimSpace(fileHeader.Filename) == "" {
		respond.Error(c, http.StatusBadRequest, "No file selected")
		return
	}

	jobDescription := c.PostForm("job_description")
	if strings.TrimSpace(jobDescription) == "" {
		respond.Error(c, http.StatusBadRequest, "Job description is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		metrics.IncExtractFailures()
		respond.Error(c, http.StatusBadRequest, "Error extracting text from PDF: "+err.Error())
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		metrics.IncExtractFailures()
		respond.Error(c, http.StatusBadRequest, "Error extracting text from PDF: "+err.Error())
		return
	}

	cvText, err := extract.TextFromBytes(c.Request.Context(), data, fileHeader.Header.Get("Content-Type"), fileHeader.Filename)
	if err != nil {
		metrics.IncExtractFailures()
		respond.Error(c, http.StatusBadRequest, "Error extracting text from PDF: "+err.Error())
		return
	}

	result := h.Svc.Analyze(c.Request.Context(), cvText, jobDescription)
	c.Set("isFallback", result.IsFallback)

	respond.OK(c, result)
}
