package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/voyago/rates-ingestion/internal/entity"
	"github.com/voyago/rates-ingestion/internal/export"
	"github.com/voyago/rates-ingestion/internal/extract"
	"github.com/voyago/rates-ingestion/internal/llm"
	"github.com/voyago/rates-ingestion/internal/pipeline"
	"github.com/voyago/rates-ingestion/internal/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubRateExtractor struct {
	candidates []llm.RateCandidate
	err        error
}

func (s *stubRateExtractor) ExtractRates(_ context.Context, _ llm.ExtractRequest) ([]llm.RateCandidate, []byte, error) {
	if s.err != nil {
		return nil, nil, s.err
	}
	raw, _ := json.Marshal(s.candidates)
	return s.candidates, raw, nil
}

type stubRateRepo struct {
	inserted  []*entity.RateRecord
	listed    []*entity.RateRecord
	insertErr error
	listErr   error
}

func (s *stubRateRepo) InsertBatch(_ context.Context, recs []*entity.RateRecord) ([]*entity.RateRecord, error) {
	if s.insertErr != nil {
		return nil, s.insertErr
	}
	s.inserted = append(s.inserted, recs...)
	return recs, nil
}

func (s *stubRateRepo) ListByAgent(_ context.Context, _ string, _, _ *time.Time) ([]*entity.RateRecord, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.listed, nil
}

func newTestRouter(t *testing.T, ext *stubRateExtractor, repo *stubRateRepo) *gin.Engine {
	t.Helper()
	proc := pipeline.NewProcessor(pipeline.ProcessorConfig{
		MaxUploadBytes: 1 << 20,
		TempDir:        t.TempDir(),
	}, extract.NewResolver(nil), ext, validation.NewEngine(nil), repo, nil, nil)
	h := NewHandler(proc, repo, export.NewService(repo, nil), nil, nil)
	return NewRouter(h, nil)
}

func uploadRequest(t *testing.T, fields map[string]string, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write(content); err != nil {
			t.Fatal(err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/rates/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func workbookFixture(t *testing.T, rows ...[]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func decodeError(t *testing.T, body *bytes.Buffer) ErrorResponse {
	t.Helper()
	var er ErrorResponse
	if err := json.Unmarshal(body.Bytes(), &er); err != nil {
		t.Fatalf("decode error body %q: %v", body.String(), err)
	}
	return er
}

func TestUploadHappyPath(t *testing.T) {
	ext := &stubRateExtractor{candidates: []llm.RateCandidate{{
		RateType:    "Hotel",
		Description: "Downtown Suite",
		Cost:        float64(120),
		Currency:    "USD",
		ValidStart:  "2024-01-01",
		ValidEnd:    "2024-12-31",
	}}}
	repo := &stubRateRepo{}
	r := newTestRouter(t, ext, repo)

	content := workbookFixture(t, []any{"Hotel", "Downtown Suite", 120, "USD", "2024-01-01", "2024-12-31"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, map[string]string{"agent_id": "agent-7"}, "rates.xlsx", content))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var sr SuccessResponse
	if err := json.Unmarshal(w.Body.Bytes(), &sr); err != nil {
		t.Fatal(err)
	}
	if !sr.Success || sr.Count != 1 || len(sr.Rates) != 1 {
		t.Errorf("response = %+v", sr)
	}
	if sr.Message != "Successfully imported 1 rates" {
		t.Errorf("Message = %q", sr.Message)
	}
	if len(repo.inserted) != 1 || repo.inserted[0].AgentID != "agent-7" {
		t.Errorf("inserted = %+v", repo.inserted)
	}
}

func TestUploadMissingAgentID(t *testing.T) {
	r := newTestRouter(t, &stubRateExtractor{}, &stubRateRepo{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, nil, "rates.xlsx", workbookFixture(t, []any{"x"})))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if er := decodeError(t, w.Body); er.Error != "Missing agent_id" {
		t.Errorf("error = %q", er.Error)
	}
}

func TestUploadMissingFile(t *testing.T) {
	r := newTestRouter(t, &stubRateExtractor{}, &stubRateRepo{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, map[string]string{"agent_id": "a1"}, "", nil))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if er := decodeError(t, w.Body); er.Error != "No file uploaded" {
		t.Errorf("error = %q", er.Error)
	}
}

func TestUploadUnsupportedType(t *testing.T) {
	r := newTestRouter(t, &stubRateExtractor{}, &stubRateRepo{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, map[string]string{"agent_id": "a1"}, "rates.txt", []byte("plain")))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if er := decodeError(t, w.Body); er.Error != "Unsupported file type" {
		t.Errorf("error = %q", er.Error)
	}
}

func TestUploadOversizeFile(t *testing.T) {
	repo := &stubRateRepo{}
	proc := pipeline.NewProcessor(pipeline.ProcessorConfig{
		MaxUploadBytes: 16,
		TempDir:        t.TempDir(),
	}, extract.NewResolver(nil), &stubRateExtractor{}, validation.NewEngine(nil), repo, nil, nil)
	h := NewHandler(proc, repo, export.NewService(repo, nil), nil, nil)
	r := NewRouter(h, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, map[string]string{"agent_id": "a1"}, "rates.pdf", bytes.Repeat([]byte("a"), 64)))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if er := decodeError(t, w.Body); er.Error != "File too large" {
		t.Errorf("error = %q", er.Error)
	}
}

func TestUploadEmptyAIResult(t *testing.T) {
	r := newTestRouter(t, &stubRateExtractor{candidates: []llm.RateCandidate{}}, &stubRateRepo{})

	content := workbookFixture(t, []any{"company newsletter", "no pricing here"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, map[string]string{"agent_id": "a1"}, "memo.xlsx", content))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if er := decodeError(t, w.Body); er.Error != "No valid rate data could be extracted from the file" {
		t.Errorf("error = %q", er.Error)
	}
}

func TestUploadValidationFailureIs500WithDetails(t *testing.T) {
	ext := &stubRateExtractor{candidates: []llm.RateCandidate{{
		RateType:    "Hotel",
		Description: "Downtown Suite",
		Cost:        "abc",
		Currency:    "USD",
		ValidStart:  "2024-01-01",
		ValidEnd:    "2024-12-31",
	}}}
	repo := &stubRateRepo{}
	r := newTestRouter(t, ext, repo)

	content := workbookFixture(t, []any{"Hotel", "Downtown Suite", "abc", "USD"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, map[string]string{"agent_id": "a1"}, "rates.xlsx", content))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	er := decodeError(t, w.Body)
	if er.Error != "Rate validation failed" {
		t.Errorf("error = %q", er.Error)
	}
	if len(er.Details) != 1 || er.Details[0] != "Rate 1: Invalid cost value" {
		t.Errorf("details = %v", er.Details)
	}
	if len(repo.inserted) != 0 {
		t.Errorf("rejected batch must not persist, got %d records", len(repo.inserted))
	}
}

func TestUploadWrongVerbIs405(t *testing.T) {
	r := newTestRouter(t, &stubRateExtractor{}, &stubRateRepo{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/rates/upload", nil))

	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", w.Code)
	}
	if er := decodeError(t, w.Body); er.Error != "Method not allowed" {
		t.Errorf("error = %q", er.Error)
	}
}

func TestListRates(t *testing.T) {
	repo := &stubRateRepo{listed: []*entity.RateRecord{
		{AgentID: "a1", RateType: "Hotel", Description: "Suite", Cost: 120, Currency: "USD"},
	}}
	r := newTestRouter(t, &stubRateExtractor{}, repo)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/rates?agent_id=a1&from=2024-01-01", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var body struct {
		Count int                  `json:"count"`
		Rates []*entity.RateRecord `json:"rates"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Count != 1 || len(body.Rates) != 1 {
		t.Errorf("body = %+v", body)
	}
}

func TestListRatesRequiresAgentID(t *testing.T) {
	r := newTestRouter(t, &stubRateExtractor{}, &stubRateRepo{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/rates", nil))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestListRatesRejectsBadDate(t *testing.T) {
	r := newTestRouter(t, &stubRateExtractor{}, &stubRateRepo{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/rates?agent_id=a1&from=01-02-2024", nil))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestExportRatesReturnsWorkbook(t *testing.T) {
	repo := &stubRateRepo{listed: []*entity.RateRecord{
		{AgentID: "a1", RateType: "Tour", Description: "City walk", Cost: 30, Currency: "EUR"},
	}}
	r := newTestRouter(t, &stubRateExtractor{}, repo)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/rates/export?agent_id=a1", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	if err != nil {
		t.Fatalf("exported body is not a workbook: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows("Rates")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want header + 1", len(rows))
	}
}
