package engine

import (
	"context"

	"github.com/andipradana/domain-monitor/services/agent/common"
	"github.com/andipradana/domain-monitor/services/agent/config"
)

// Builder defines the interface for assembling report records
type Builder interface {
	// BuildReport assembles a fresh record for the provided brand, embedding the
	// current hostname and a build timestamp inside the catatan field
	BuildReport(cfg config.BrandConfig) (common.ReportRecord, error)

	IsInterfaceNil() bool
}

// Sender defines the interface for delivering a record to a single endpoint
type Sender interface {
	// Send performs exactly one POST call to the endpoint. A nil return means the
	// endpoint classified the report as accepted (2xx status).
	Send(ctx context.Context, record common.ReportRecord, endpoint string) error

	IsInterfaceNil() bool
}
