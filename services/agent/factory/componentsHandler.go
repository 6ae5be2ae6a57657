package factory

import (
	"context"
	"sync"
	"time"

	"github.com/andipradana/domain-monitor/commonGo"
	"github.com/andipradana/domain-monitor/services/agent/builder"
	"github.com/andipradana/domain-monitor/services/agent/config"
	"github.com/andipradana/domain-monitor/services/agent/engine"
	"github.com/andipradana/domain-monitor/services/agent/hostenv"
	"github.com/andipradana/domain-monitor/services/agent/reporter"
)

type componentsHandler struct {
	builder        engine.Builder
	sender         engine.Sender
	engines        []Engine
	mutCancel      sync.Mutex
	cancel         func()
	reportInterval time.Duration
}

// NewComponentsHandler creates a new components handler. One engine is created
// per configured brand, all sharing the same builder and sender. The provided
// brandKeys map attaches the resolved API key to each brand.
func NewComponentsHandler(
	brandKeys map[string]string,
	cfg config.Config,
) (*componentsHandler, error) {
	reportBuilder, err := builder.NewReportBuilder(hostenv.NewOSEnvironment())
	if err != nil {
		return nil, err
	}

	sender := reporter.NewHTTPReporter(cfg.UserAgent, time.Duration(cfg.ReportTimeoutInSeconds)*time.Second)

	engines := make([]Engine, 0, len(cfg.Brands))
	for _, brandCfg := range cfg.Brands {
		brandCfg.ApiKey = brandKeys[brandCfg.Brand]

		eng, err := engine.NewReportEngine(brandCfg, reportBuilder, sender)
		if err != nil {
			return nil, err
		}

		engines = append(engines, eng)
	}

	return &componentsHandler{
		builder:        reportBuilder,
		sender:         sender,
		engines:        engines,
		reportInterval: time.Duration(cfg.ReportIntervalInSeconds) * time.Second,
	}, nil
}

// GetBuilder returns the builder component
func (ch *componentsHandler) GetBuilder() engine.Builder {
	return ch.builder
}

// GetSender returns the sender component
func (ch *componentsHandler) GetSender() engine.Sender {
	return ch.sender
}

// GetEngines returns the engine components, one per brand
func (ch *componentsHandler) GetEngines() []Engine {
	return ch.engines
}

// Start starts the inner components
func (ch *componentsHandler) Start() {
	ch.mutCancel.Lock()
	defer ch.mutCancel.Unlock()

	if ch.cancel != nil {
		return
	}

	var ctx context.Context
	ctx, ch.cancel = context.WithCancel(context.Background())

	for _, eng := range ch.engines {
		commonGo.CronJobStarter(ctx, eng.Process, ch.reportInterval)
	}
}

// Close closes the inner components
func (ch *componentsHandler) Close() {
	ch.mutCancel.Lock()
	defer ch.mutCancel.Unlock()

	if ch.cancel == nil {
		return
	}

	ch.cancel()
	ch.cancel = nil
}
