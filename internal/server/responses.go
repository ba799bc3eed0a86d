package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/voyago/rates-ingestion/internal/common"
	"github.com/voyago/rates-ingestion/internal/entity"
)

// SuccessResponse is the 200 body for a completed ingestion.
type SuccessResponse struct {
	Success bool                 `json:"success"`
	Message string               `json:"message"`
	Count   int                  `json:"count"`
	Rates   []*entity.RateRecord `json:"rates"`
}

// ErrorResponse distinguishes a short error label from a longer explanation.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Message string   `json:"message,omitempty"`
	Details []string `json:"details,omitempty"`
}

func badRequest(c *gin.Context, label, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: label, Message: message})
}

// writeError maps the pipeline error taxonomy onto the HTTP contract:
// malformed-input conditions are 400s, everything else is a 500.
func writeError(c *gin.Context, err error) {
	var (
		fileType    *common.FileTypeError
		fileSize    *common.FileSizeError
		extraction  *common.ExtractionError
		aiCall      *common.AIProcessingError
		aiParse     *common.AIResponseParseError
		validation  *common.ValidationError
		persistence *common.PersistenceError
	)

	switch {
	case errors.As(err, &fileType):
		badRequest(c, "Unsupported file type", fileType.Error())
	case errors.As(err, &fileSize):
		badRequest(c, "File too large", fileSize.Error())
	case errors.Is(err, common.ErrNoContent):
		badRequest(c, "No text content found in document", "The document appears to be empty or contains no readable text")
	case errors.Is(err, common.ErrNoRates):
		badRequest(c, "No valid rate data could be extracted from the file", "The document does not appear to contain pricing information")
	case errors.As(err, &extraction):
		badRequest(c, "Failed to extract text from document", extraction.Error())
	case errors.As(err, &validation):
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Rate validation failed",
			Message: validation.Error(),
			Details: validation.Messages(),
		})
	case errors.As(err, &aiCall):
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "AI processing failed",
			Message: aiCall.Error(),
		})
	case errors.As(err, &aiParse):
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "AI response could not be parsed",
			Message: aiParse.Error(),
		})
	case errors.As(err, &persistence):
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to save rates",
			Message: persistence.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Internal server error",
			Message: err.Error(),
		})
	}
}
