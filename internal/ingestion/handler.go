package ingestion

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"

	v1 "github.com/aevon-lab/project-locus/internal/api/v1"
	httperr "github.com/aevon-lab/project-locus/internal/core/errors"
	"github.com/aevon-lab/project-locus/internal/metrics"
	"github.com/gin-gonic/gin"
)

const (
	msgReadBodyFailed = "Failed to read request body"
	msgInvalidJSON    = "Invalid JSON body"
)

// ingestionError carries the structured HTTP error shape from a helper back to the orchestrator.
// Helpers return this instead of writing to gin.Context directly, keeping them decoupled from HTTP.
type ingestionError struct {
	statusCode int
	errorType  string
	message    string
	details    interface{}
}

func (e *ingestionError) Error() string {
	return e.message
}

// SubmitHandler accepts a batch of device reports. Each item becomes one
// insertion task; the response lists the task IDs without waiting for them.
func (s *Service) SubmitHandler(c *gin.Context) {
	sub, payloadSize, err := s.parseSubmission(c)
	if err != nil {
		writeError(c, err)
		return
	}

	if err := validateSubmission(sub); err != nil {
		metrics.SubmissionsRejected.Inc()
		writeError(c, err)
		return
	}

	now := s.now()
	measures := make([]*v1.Measure, 0, len(sub.Items))
	cells, wifis := 0, 0
	for i := range sub.Items {
		m, err := sub.Items[i].ToMeasure(now)
		if err != nil {
			metrics.SubmissionsRejected.Inc()
			writeError(c, &ingestionError{
				statusCode: http.StatusBadRequest,
				errorType:  httperr.HttpValidationError,
				message:    err.Error(),
			})
			return
		}
		cells += len(m.Cells)
		wifis += len(m.Wifis)
		measures = append(measures, m)
	}

	// Tasks outlive the request; only request-scoped values are kept.
	ctx := context.WithoutCancel(c.Request.Context())

	ids := make([]string, 0, len(measures))
	for _, m := range measures {
		res := DispatchInsert(ctx, s.runner, s.store, *m)
		ids = append(ids, res.ID.String())
	}

	slog.Info("[Ingestion] Submission accepted",
		"items", len(sub.Items),
		"cells", cells,
		"wifis", wifis,
		"payload_size", payloadSize)

	c.JSON(http.StatusAccepted, gin.H{"status": "accepted", "tasks": ids})
}

// parseSubmission reads the raw request body and binds it into a Submission.
// Returns the parsed body and the raw payload size (used for structured logging upstream).
func (s *Service) parseSubmission(c *gin.Context) (*v1.Submission, int, *ingestionError) {
	// Enforce maximum body size to prevent OOM attacks
	maxBytes := int64(s.maxBodySizeBytes)
	limitedBody := io.LimitReader(c.Request.Body, maxBytes+1) // +1 to detect oversized requests

	bodyBytes, err := io.ReadAll(limitedBody)
	if err != nil {
		slog.Error("[Ingestion] Failed to read request body", "error", err)
		return nil, 0, &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgReadBodyFailed,
		}
	}

	if int64(len(bodyBytes)) > maxBytes {
		slog.Warn("[Ingestion] Request body exceeds maximum size", "size", len(bodyBytes), "max", maxBytes)
		return nil, len(bodyBytes), &ingestionError{
			statusCode: http.StatusRequestEntityTooLarge,
			errorType:  httperr.HttpPayloadTooLargeError,
			message:    "Request body exceeds maximum allowed size",
			details: map[string]interface{}{
				"max_size_mb": maxBytes / (1024 * 1024),
			},
		}
	}

	c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))

	var sub v1.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		slog.Warn("[Ingestion] Invalid JSON body received", "error", err, "payload_size", len(bodyBytes))
		return nil, len(bodyBytes), &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    msgInvalidJSON,
		}
	}

	return &sub, len(bodyBytes), nil
}

func validateSubmission(sub *v1.Submission) *ingestionError {
	if err := sub.Validate(); err != nil {
		slog.Warn("[Ingestion] Submission validation failed", "error", err, "items", len(sub.Items))
		return &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpValidationError,
			message:    err.Error(),
		}
	}
	return nil
}

// writeError serializes an ingestionError as the JSON HTTP response.
func writeError(c *gin.Context, err *ingestionError) {
	c.JSON(err.statusCode, httperr.ErrorResponse{
		ErrorType: err.errorType,
		Message:   err.message,
		Details:   err.details,
	})
}
