// Package pipeline coordinates the rate ingestion stages: guard, text
// extraction, AI structured extraction, validation, and persistence. Stages
// run strictly sequentially per request; the transient upload is released
// on every exit path.
package pipeline

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/voyago/rates-ingestion/internal/common"
	"github.com/voyago/rates-ingestion/internal/entity"
	"github.com/voyago/rates-ingestion/internal/extract"
	"github.com/voyago/rates-ingestion/internal/llm"
	"github.com/voyago/rates-ingestion/internal/metrics"
	"github.com/voyago/rates-ingestion/internal/repository"
	"github.com/voyago/rates-ingestion/internal/validation"
)

// IngestRequest carries one uploaded document and its ownership.
type IngestRequest struct {
	Filename string
	Size     int64
	Content  io.Reader
	AgentID  string
}

// IngestResult reports a successful run.
type IngestResult struct {
	Records []*entity.RateRecord
	Method  string
}

type Processor struct {
	logger          *slog.Logger
	guard           Guard
	extractor       *extract.Resolver
	rates           llm.RateExtractor
	validator       *validation.Engine
	repo            repository.RateRepository
	metrics         *metrics.Metrics
	tempDir         string
	defaultCurrency string
}

type ProcessorConfig struct {
	MaxUploadBytes  int64
	TempDir         string
	DefaultCurrency string
}

func NewProcessor(
	cfg ProcessorConfig,
	extractor *extract.Resolver,
	rates llm.RateExtractor,
	validator *validation.Engine,
	repo repository.RateRepository,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.DefaultCurrency == "" {
		cfg.DefaultCurrency = "USD"
	}
	return &Processor{
		logger:          logger,
		guard:           NewGuard(cfg.MaxUploadBytes),
		extractor:       extractor,
		rates:           rates,
		validator:       validator,
		repo:            repo,
		metrics:         m,
		tempDir:         cfg.TempDir,
		defaultCurrency: cfg.DefaultCurrency,
	}
}

// Run executes the five stages for one request. Whatever the outcome, the
// transient document created here is discarded before Run returns.
func (p *Processor) Run(ctx context.Context, req IngestRequest) (*IngestResult, error) {
	start := time.Now()

	// Stage 1: guard, before any work on the content.
	format, err := p.guard.Admit(req.Filename, req.Size)
	if err != nil {
		p.metrics.ObserveOutcome(metrics.OutcomeRejected)
		return nil, err
	}

	doc, err := SaveUpload(req.Content, req.Filename, p.tempDir)
	if err != nil {
		p.metrics.ObserveOutcome(metrics.OutcomeRejected)
		return nil, common.WrapError(err, "store upload")
	}
	defer doc.Discard(p.logger)

	content, err := doc.Bytes()
	if err != nil {
		return nil, common.WrapError(err, "read upload")
	}

	// Stage 2: text extraction.
	extractStart := time.Now()
	text, err := p.extractor.Extract(ctx, format, content)
	p.metrics.ObserveStage("extract", time.Since(extractStart).Seconds())
	if err != nil {
		p.metrics.ObserveOutcome(metrics.OutcomeRejected)
		return nil, err
	}
	if strings.TrimSpace(text.Text) == "" {
		p.logger.Info("pipeline.no_content", "filename", req.Filename, "format", format)
		p.metrics.ObserveOutcome(metrics.OutcomeRejected)
		return nil, common.ErrNoContent
	}

	// Stage 3: AI structured extraction.
	aiStart := time.Now()
	candidates, _, err := p.rates.ExtractRates(ctx, llm.ExtractRequest{
		Text:            text.Text,
		FilenameHint:    req.Filename,
		DefaultCurrency: p.defaultCurrency,
		Today:           time.Now().UTC(),
	})
	p.metrics.ObserveStage("llm", time.Since(aiStart).Seconds())
	if err != nil {
		p.metrics.ObserveOutcome(metrics.OutcomeAIFailure)
		return nil, err
	}
	if len(candidates) == 0 {
		p.logger.Info("pipeline.no_rates", "filename", req.Filename)
		p.metrics.ObserveOutcome(metrics.OutcomeRejected)
		return nil, common.ErrNoRates
	}

	// Stage 4: validation, all-or-nothing.
	if err := p.validator.ValidateBatch(candidates); err != nil {
		p.metrics.ObserveOutcome(metrics.OutcomeInvalid)
		return nil, err
	}

	// Stage 5: persistence.
	records := p.toRecords(candidates, req, text.Method)
	persistStart := time.Now()
	inserted, err := p.repo.InsertBatch(ctx, records)
	p.metrics.ObserveStage("persist", time.Since(persistStart).Seconds())
	if err != nil {
		p.metrics.ObserveOutcome(metrics.OutcomePersistFail)
		return nil, &common.PersistenceError{Cause: err}
	}

	p.metrics.ObserveOutcome(metrics.OutcomeSuccess)
	p.metrics.AddPersisted(len(inserted))
	p.logger.Info("pipeline.ok",
		"filename", req.Filename,
		"agent_id", req.AgentID,
		"format", format,
		"rates", len(inserted),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return &IngestResult{Records: inserted, Method: text.Method}, nil
}

func (p *Processor) toRecords(candidates []llm.RateCandidate, req IngestRequest, method string) []*entity.RateRecord {
	now := time.Now().UTC()
	records := make([]*entity.RateRecord, len(candidates))
	for i, c := range candidates {
		cost := coerceCost(c.Cost)
		start, _ := time.Parse("2006-01-02", c.ValidStart)
		end, _ := time.Parse("2006-01-02", c.ValidEnd)
		records[i] = &entity.RateRecord{
			ID:          uuid.New(),
			AgentID:     req.AgentID,
			RateType:    c.RateType,
			Description: c.Description,
			Cost:        cost,
			Currency:    strings.ToUpper(c.Currency),
			ValidStart:  start,
			ValidEnd:    end,
			Details: entity.Provenance{
				SourceFilename:   req.Filename,
				ImportedAt:       now,
				ExtractionMethod: method,
			},
			CreatedAt: now,
		}
	}
	return records
}

// coerceCost mirrors the numeric forms the validator accepts. Candidates
// reaching this point have already passed validation.
func coerceCost(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	default:
		return 0
	}
}
