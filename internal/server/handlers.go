package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/voyago/rates-ingestion/internal/export"
	"github.com/voyago/rates-ingestion/internal/pipeline"
	"github.com/voyago/rates-ingestion/internal/repository"
)

type Handler struct {
	processor *pipeline.Processor
	rateRepo  repository.RateRepository
	exporter  *export.Service
	pool      *pgxpool.Pool
	logger    *slog.Logger
}

func NewHandler(
	processor *pipeline.Processor,
	rateRepo repository.RateRepository,
	exporter *export.Service,
	pool *pgxpool.Pool,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		processor: processor,
		rateRepo:  rateRepo,
		exporter:  exporter,
		pool:      pool,
		logger:    logger,
	}
}

// UploadRates ingests one pricing document for an agent.
func (h *Handler) UploadRates(c *gin.Context) {
	agentID := strings.TrimSpace(c.PostForm("agent_id"))
	if agentID == "" {
		badRequest(c, "Missing agent_id", "The agent_id form field is required")
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "No file uploaded", "Attach the pricing document as the 'file' form field")
		return
	}

	src, err := fh.Open()
	if err != nil {
		writeError(c, fmt.Errorf("open upload: %w", err))
		return
	}
	defer src.Close()

	h.logger.Info("upload.received",
		"agent_id", agentID,
		"filename", fh.Filename,
		"size", fh.Size,
	)

	res, err := h.processor.Run(c.Request.Context(), pipeline.IngestRequest{
		Filename: fh.Filename,
		Size:     fh.Size,
		Content:  src,
		AgentID:  agentID,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	count := len(res.Records)
	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: fmt.Sprintf("Successfully imported %d rates", count),
		Count:   count,
		Rates:   res.Records,
	})
}

// ListRates returns an agent's persisted rates.
func (h *Handler) ListRates(c *gin.Context) {
	agentID := strings.TrimSpace(c.Query("agent_id"))
	if agentID == "" {
		badRequest(c, "Missing agent_id", "The agent_id query parameter is required")
		return
	}

	from, err := parseDateParam(c.Query("from"))
	if err != nil {
		badRequest(c, "Invalid from date", err.Error())
		return
	}
	to, err := parseDateParam(c.Query("to"))
	if err != nil {
		badRequest(c, "Invalid to date", err.Error())
		return
	}

	recs, err := h.rateRepo.ListByAgent(c.Request.Context(), agentID, from, to)
	if err != nil {
		h.logger.Error("rates.list.failed", "agent_id", agentID, "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to list rates",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(recs), "rates": recs})
}

// ExportRates streams an agent's rates as an XLSX workbook.
func (h *Handler) ExportRates(c *gin.Context) {
	agentID := strings.TrimSpace(c.Query("agent_id"))
	if agentID == "" {
		badRequest(c, "Missing agent_id", "The agent_id query parameter is required")
		return
	}

	from, err := parseDateParam(c.Query("from"))
	if err != nil {
		badRequest(c, "Invalid from date", err.Error())
		return
	}
	to, err := parseDateParam(c.Query("to"))
	if err != nil {
		badRequest(c, "Invalid to date", err.Error())
		return
	}

	data, err := h.exporter.ExportRatesXLSX(c.Request.Context(), agentID, from, to)
	if err != nil {
		h.logger.Error("rates.export.failed", "agent_id", agentID, "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to export rates",
			Message: err.Error(),
		})
		return
	}

	filename := fmt.Sprintf("rates-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// Health pings the datastore.
func (h *Handler) Health(c *gin.Context) {
	if err := repository.HealthCheck(c.Request.Context(), h.pool, 3*time.Second); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func parseDateParam(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return &t, nil
}
