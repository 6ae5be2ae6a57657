package builder

import (
	"errors"
	"fmt"
	"time"

	"github.com/andipradana/domain-monitor/services/agent/common"
	"github.com/andipradana/domain-monitor/services/agent/config"
	"github.com/andipradana/domain-monitor/services/agent/hostenv"
	"github.com/multiversx/mx-chain-core-go/core/check"
)

const catatanMarker = "Laporan otomatis dari agent"

type reportBuilder struct {
	env hostenv.Environment
}

// NewReportBuilder creates a builder that assembles report records from the
// static brand configuration plus the runtime environment
func NewReportBuilder(env hostenv.Environment) (*reportBuilder, error) {
	if check.IfNil(env) {
		return nil, errors.New("nil environment")
	}

	return &reportBuilder{
		env: env,
	}, nil
}

// BuildReport assembles a fresh record for the provided brand. The catatan
// field carries the build timestamp in RFC3339 format.
func (b *reportBuilder) BuildReport(cfg config.BrandConfig) (common.ReportRecord, error) {
	hostname, err := b.env.Hostname()
	if err != nil {
		return common.ReportRecord{}, fmt.Errorf("failed to read hostname: %w", err)
	}

	return common.ReportRecord{
		Brand:    cfg.Brand,
		Domain:   hostname,
		Expired:  cfg.Expired,
		Status:   cfg.Status,
		Kategori: cfg.Kategori,
		Catatan:  fmt.Sprintf("%s - %s", catatanMarker, b.env.Now().Format(time.RFC3339)),
		ApiKey:   cfg.ApiKey,
	}, nil
}

// IsInterfaceNil returns true if the value under the interface is nil
func (b *reportBuilder) IsInterfaceNil() bool {
	return b == nil
}
