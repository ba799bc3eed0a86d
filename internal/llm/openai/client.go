package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/voyago/rates-ingestion/internal/common"
	"github.com/voyago/rates-ingestion/internal/llm"
)

// ExtractRates implements llm.RateExtractor using text-only chat/completions.
// The call has no side effects, so a failed attempt is retried up to
// cfg.MaxRetries times with linear backoff before giving up.
func (c *Client) ExtractRates(ctx context.Context, req llm.ExtractRequest) ([]llm.RateCandidate, []byte, error) {
	rid := uuid.New().String()
	start := time.Now()

	if req.Today.IsZero() {
		req.Today = time.Now().UTC()
	}

	c.logger.Info("llm.extract.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"text_len", len(req.Text),
		"filename", req.FilenameHint,
	)

	schema := llm.BuildRateArraySchema()
	body := map[string]any{
		"model":       c.cfg.Model,
		"temperature": c.cfg.Temperature,
		"messages": []map[string]any{
			{"role": "system", "content": llm.BuildSystemPrompt(req)},
			{"role": "system", "content": "JSON Schema:\n" + mustJSON(schema)},
			{"role": "user", "content": llm.BuildUserPrompt(req)},
		},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	raw, err := c.postWithRetry(ctx, rid, endpoint, body)
	if err != nil {
		c.logger.Error("llm.extract.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, nil, &common.AIProcessingError{Cause: err}
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		return nil, raw, &common.AIProcessingError{Cause: fmt.Errorf("decode completion response: %w", err)}
	}
	if len(cc.Choices) == 0 {
		return nil, raw, &common.AIProcessingError{Cause: fmt.Errorf("no choices in completion response")}
	}

	content := llm.StripCodeFences(cc.Choices[0].Message.Content)
	payload := []byte(content)

	if err := llm.ValidateArrayShape(payload); err != nil {
		c.logger.Error("llm.extract.bad_payload",
			"req_id", rid, "error", err, "content_len", len(content),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, payload, &common.AIResponseParseError{Cause: err}
	}

	var candidates []llm.RateCandidate
	if err := json.Unmarshal(payload, &candidates); err != nil {
		return nil, payload, &common.AIResponseParseError{Cause: err}
	}

	c.logger.Info("llm.extract.ok",
		"req_id", rid,
		"candidates", len(candidates),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return candidates, payload, nil
}

func (c *Client) postWithRetry(ctx context.Context, rid, url string, body map[string]any) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			c.logger.Warn("llm.extract.retry", "req_id", rid, "attempt", attempt, "error", lastErr)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * c.cfg.RetryDelay):
			}
		}
		raw, err := c.post(ctx, url, body)
		if err == nil {
			return raw, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
	return nil, lastErr
}

func (c *Client) post(ctx context.Context, url string, body map[string]any) ([]byte, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("completion http error: %w", err)
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			c.logger.Warn("completion response body close error", "error", err)
		}
	}(resp.Body)

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("completion status %d: %s", resp.StatusCode, string(raw))
	}
	return raw, nil
}

func mustJSON(v any) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}
