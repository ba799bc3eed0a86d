package entity

import (
	"time"

	"github.com/google/uuid"
)

// Provenance records where a persisted rate came from.
type Provenance struct {
	SourceFilename   string    `json:"source_filename"`
	ImportedAt       time.Time `json:"imported_at"`
	ExtractionMethod string    `json:"extraction_method"`
}

// RateRecord is a validated rate candidate plus ownership and provenance.
// Records are immutable once created by the ingestion pipeline.
type RateRecord struct {
	ID          uuid.UUID  `json:"id"`
	AgentID     string     `json:"agent_id"`
	RateType    string     `json:"rate_type"`
	Description string     `json:"description"`
	Cost        float64    `json:"cost"`
	Currency    string     `json:"currency"`
	ValidStart  time.Time  `json:"valid_start"`
	ValidEnd    time.Time  `json:"valid_end"`
	Details     Provenance `json:"details"`
	CreatedAt   time.Time  `json:"created_at"`
}
