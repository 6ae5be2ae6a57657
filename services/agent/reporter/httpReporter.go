package reporter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/andipradana/domain-monitor/services/agent/common"
	logger "github.com/multiversx/mx-chain-logger-go"
)

var log = logger.GetOrCreate("reporter")

type httpReporter struct {
	userAgent string
	client    *http.Client
}

// NewHTTPReporter creates a new reporter that pushes report records over HTTP POST
func NewHTTPReporter(userAgent string, timeout time.Duration) *httpReporter {
	return &httpReporter{
		userAgent: userAgent,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Send delivers the record to the provided endpoint with a single POST call.
// The response body is never parsed, only the status code is consulted.
func (r *httpReporter) Send(ctx context.Context, record common.ReportRecord, endpoint string) error {
	body, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal report record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create report request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		log.Warn("report delivery failed on transport", "brand", record.Brand, "endpoint", endpoint, "error", err)
		return fmt.Errorf("network error sending report: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &StatusError{Code: resp.StatusCode}
		log.Warn("report delivery rejected", "brand", record.Brand, "endpoint", endpoint, "status", resp.StatusCode)
		return statusErr
	}

	log.Debug("successfully sent report", "brand", record.Brand, "endpoint", endpoint, "domain", record.Domain)

	return nil
}

// IsInterfaceNil returns true if the value under the interface is nil
func (r *httpReporter) IsInterfaceNil() bool {
	return r == nil
}
