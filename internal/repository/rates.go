package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/voyago/rates-ingestion/internal/entity"
)

// RateRepository is the datastore boundary for persisted rates.
type RateRepository interface {
	// InsertBatch writes every record in one transaction. Either all rows
	// are inserted or none are.
	InsertBatch(ctx context.Context, records []*entity.RateRecord) ([]*entity.RateRecord, error)
	// ListByAgent returns an agent's rates, optionally bounded by validity
	// window, ordered by valid_start.
	ListByAgent(ctx context.Context, agentID string, from, to *time.Time) ([]*entity.RateRecord, error)
}

type rateRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewRateRepository(pool *pgxpool.Pool, logger *slog.Logger) RateRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &rateRepository{pool: pool, logger: logger}
}

const insertRateSQL = `
INSERT INTO rates (id, agent_id, rate_type, description, cost, currency, valid_start, valid_end, details, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

func (r *rateRepository) InsertBatch(ctx context.Context, records []*entity.RateRecord) ([]*entity.RateRecord, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && err != pgx.ErrTxClosed {
			r.logger.Warn("rates.insert.rollback_error", "error", err)
		}
	}()

	batch := &pgx.Batch{}
	for _, rec := range records {
		details, err := json.Marshal(rec.Details)
		if err != nil {
			return nil, fmt.Errorf("encode details: %w", err)
		}
		batch.Queue(insertRateSQL,
			rec.ID, rec.AgentID, rec.RateType, rec.Description,
			rec.Cost, rec.Currency, rec.ValidStart, rec.ValidEnd,
			details, rec.CreatedAt,
		)
	}

	br := tx.SendBatch(ctx, batch)
	for range records {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return nil, fmt.Errorf("insert rate: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return nil, fmt.Errorf("close batch: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	r.logger.Info("rates.insert.ok", "rows", len(records))
	return records, nil
}

const listRatesSQL = `
SELECT id, agent_id, rate_type, description, cost, currency, valid_start, valid_end, details, created_at
FROM rates
WHERE agent_id = $1`

func (r *rateRepository) ListByAgent(ctx context.Context, agentID string, from, to *time.Time) ([]*entity.RateRecord, error) {
	sql := listRatesSQL
	args := []any{agentID}
	if from != nil {
		args = append(args, *from)
		sql += fmt.Sprintf(" AND valid_start >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		sql += fmt.Sprintf(" AND valid_end <= $%d", len(args))
	}
	sql += " ORDER BY valid_start"

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		r.logger.Error("rates.list.failed", "agent_id", agentID, "error", err)
		return nil, err
	}
	defer rows.Close()

	var result []*entity.RateRecord
	for rows.Next() {
		var rec entity.RateRecord
		var details []byte
		if err := rows.Scan(
			&rec.ID, &rec.AgentID, &rec.RateType, &rec.Description,
			&rec.Cost, &rec.Currency, &rec.ValidStart, &rec.ValidEnd,
			&details, &rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		if len(details) > 0 {
			if err := json.Unmarshal(details, &rec.Details); err != nil {
				r.logger.Warn("rates.list.bad_details", "rate_id", rec.ID, "error", err)
			}
		}
		result = append(result, &rec)
	}
	return result, rows.Err()
}
