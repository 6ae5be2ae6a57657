package engine

import (
	"context"
	"errors"

	"github.com/andipradana/domain-monitor/services/agent/config"
	"github.com/multiversx/mx-chain-core-go/core/check"
	logger "github.com/multiversx/mx-chain-logger-go"
)

var log = logger.GetOrCreate("engine")

// reportEngine runs the report cycle for a single brand: build one record,
// deliver to the primary endpoint, fall back to the local endpoint on failure
type reportEngine struct {
	brandCfg config.BrandConfig
	builder  Builder
	sender   Sender
}

// NewReportEngine creates a new engine instance for the provided brand
func NewReportEngine(brandCfg config.BrandConfig, b Builder, s Sender) (*reportEngine, error) {
	if check.IfNil(b) {
		return nil, errors.New("nil builder")
	}
	if check.IfNil(s) {
		return nil, errors.New("nil sender")
	}

	return &reportEngine{
		brandCfg: brandCfg,
		builder:  b,
		sender:   s,
	}, nil
}

// Process executes one report cycle. Every failure is converted into a logged
// outcome, nothing propagates to the caller.
func (e *reportEngine) Process(ctx context.Context) {
	log.Debug("waking up to send report", "brand", e.brandCfg.Brand)

	record, err := e.builder.BuildReport(e.brandCfg)
	if err != nil {
		log.Warn("failed to build report, cycle skipped", "brand", e.brandCfg.Brand, "error", err)
		return
	}

	err = e.sender.Send(ctx, record, e.brandCfg.ApiURL)
	if err == nil {
		log.Debug("report cycle succeeded", "brand", e.brandCfg.Brand, "endpoint", e.brandCfg.ApiURL)
		return
	}

	// Fallback reuses the same record, the catatan timestamp is not regenerated
	err = e.sender.Send(ctx, record, e.brandCfg.LocalApiURL)
	if err != nil {
		log.Warn("report cycle failed on both endpoints, waiting for the next tick",
			"brand", e.brandCfg.Brand, "error", err)
		return
	}

	log.Debug("report cycle succeeded on fallback", "brand", e.brandCfg.Brand, "endpoint", e.brandCfg.LocalApiURL)
}

// IsInterfaceNil returns true if the value under the interface is nil
func (e *reportEngine) IsInterfaceNil() bool {
	return e == nil
}
