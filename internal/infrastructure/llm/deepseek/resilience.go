package deepseek

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/dkrasnov/docvault/internal/core/domain"
	"github.com/dkrasnov/docvault/internal/infrastructure/resilience"
)

type HTTPStatusError struct {
	Operation  string
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPStatusError) Error() string {
	if e == nil {
		return "deepseek status error"
	}
	if strings.TrimSpace(e.Body) == "" {
		return fmt.Sprintf("deepseek %s status: %s", e.Operation, e.Status)
	}
	return fmt.Sprintf("deepseek %s status: %s: %s", e.Operation, e.Status, strings.TrimSpace(e.Body))
}

// classifyTransportError separates transient upstream conditions (worth a
// bounded retry before the fallback write takes over) from permanent ones.
func classifyTransportError(err error) resilience.ErrorClassification {
	if err == nil {
		return resilience.ErrorClassification{}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return resilience.ErrorClassification{Retryable: false, RecordFailure: false}
	}
	if resilience.IsCircuitOpen(err) {
		return resilience.ErrorClassification{Retryable: false, RecordFailure: false}
	}

	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		return resilience.ErrorClassification{
			Retryable:     isRetryableHTTPStatus(statusErr.StatusCode),
			RecordFailure: isRetryableHTTPStatus(statusErr.StatusCode),
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return resilience.ErrorClassification{Retryable: true, RecordFailure: true}
	}

	return resilience.ErrorClassification{Retryable: false, RecordFailure: true}
}

func isRetryableHTTPStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusRequestTimeout,
		http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

// wrapUnavailable maps every failed upstream exchange, whatever the cause, to
// the single error kind the pipeline's failure funnel absorbs.
func wrapUnavailable(operation string, err error) error {
	if err == nil {
		return nil
	}
	if domain.IsKind(err, domain.ErrClassifierUnavailable) {
		return err
	}
	return domain.WrapError(domain.ErrClassifierUnavailable, operation, err)
}
