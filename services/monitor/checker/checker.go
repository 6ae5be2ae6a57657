package checker

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/andipradana/domain-monitor/services/monitor/common"
	logger "github.com/multiversx/mx-chain-logger-go"
	"github.com/tidwall/gjson"
)

var log = logger.GetOrCreate("checker")

const statusActive = "aktif"
const statusInactive = "tidak aktif"

type httpChecker struct {
	client          *http.Client
	healthPath      string
	healthJSONField string
}

// NewHTTPChecker creates a new HTTP-based domain checker. When healthPath is
// not empty, an accessible domain is additionally probed on that path and the
// healthJSONField value is extracted from the JSON answer.
func NewHTTPChecker(timeout time.Duration, healthPath string, healthJSONField string) *httpChecker {
	return &httpChecker{
		client: &http.Client{
			Timeout: timeout,
		},
		healthPath:      healthPath,
		healthJSONField: healthJSONField,
	}
}

// CheckDomain probes the domain over plain HTTP first, then over HTTPS. A
// domain answering on either scheme is classified as active regardless of the
// returned status code.
func (c *httpChecker) CheckDomain(ctx context.Context, domain string) common.DomainCheckResult {
	for _, scheme := range []string{"http", "https"} {
		statusCode, err := c.headRequest(ctx, scheme, domain)
		if err != nil {
			log.Debug("domain probe failed", "domain", domain, "scheme", scheme, "error", err)
			continue
		}

		result := common.DomainCheckResult{
			Domain:     domain,
			Status:     statusActive,
			StatusCode: statusCode,
			Accessible: true,
		}

		if c.healthPath != "" {
			result.HealthValue = c.extractHealthValue(ctx, scheme, domain)
		}

		return result
	}

	return common.DomainCheckResult{
		Domain:     domain,
		Status:     statusInactive,
		Accessible: false,
	}
}

func (c *httpChecker) headRequest(ctx context.Context, scheme string, domain string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, fmt.Sprintf("%s://%s", scheme, domain), nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	return resp.StatusCode, nil
}

func (c *httpChecker) extractHealthValue(ctx context.Context, scheme string, domain string) string {
	url := fmt.Sprintf("%s://%s%s", scheme, domain, c.healthPath)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ""
	}

	resp, err := c.client.Do(req)
	if err != nil {
		log.Debug("health probe failed", "domain", domain, "url", url, "error", err)
		return ""
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ""
	}

	// Extract the configured path (e.g. "status") from the JSON answer
	result := gjson.GetBytes(body, c.healthJSONField)
	if !result.Exists() {
		log.Debug("health field not found in response", "domain", domain, "field", c.healthJSONField)
		return ""
	}

	return result.String()
}

// IsInterfaceNil returns true if the value under the interface is nil
func (c *httpChecker) IsInterfaceNil() bool {
	return c == nil
}
