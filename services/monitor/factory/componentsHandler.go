package factory

import (
	"time"

	"github.com/andipradana/domain-monitor/services/monitor/api"
	"github.com/andipradana/domain-monitor/services/monitor/checker"
	"github.com/andipradana/domain-monitor/services/monitor/config"
	"github.com/andipradana/domain-monitor/services/monitor/storage"
)

type componentsHandler struct {
	store   api.Storage
	checker api.Checker
	server  Server
}

// NewComponentsHandler creates a new components handler
func NewComponentsHandler(
	sqlitePath string,
	brandKeys map[string]string,
	authUsername string,
	authPassword string,
	cfg config.Config,
) (*componentsHandler, error) {
	store, err := storage.NewSQLiteStorage(sqlitePath, cfg.RetentionSeconds)
	if err != nil {
		return nil, err
	}

	domainChecker := checker.NewHTTPChecker(
		time.Duration(cfg.CheckTimeoutInSeconds)*time.Second,
		cfg.HealthPath,
		cfg.HealthJSONField,
	)

	serverArgs := api.ArgsWebServer{
		BrandKeys:          brandKeys,
		AuthUsername:       authUsername,
		AuthPassword:       authPassword,
		ListenAddress:      cfg.ListenAddress,
		StaticDir:          cfg.StaticDir,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		Storage:            store,
		Checker:            domainChecker,
		GeneralHandler:     api.CORSMiddleware,
	}

	server, err := api.NewServer(serverArgs)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return &componentsHandler{
		store:   store,
		checker: domainChecker,
		server:  server,
	}, nil
}

// GetStore returns the storage component
func (ch *componentsHandler) GetStore() api.Storage {
	return ch.store
}

// GetChecker returns the domain checker component
func (ch *componentsHandler) GetChecker() api.Checker {
	return ch.checker
}

// GetServer returns the server component
func (ch *componentsHandler) GetServer() Server {
	return ch.server
}

// Start starts the inner components
func (ch *componentsHandler) Start() {
	ch.server.Start()
}

// Close closes the inner components
func (ch *componentsHandler) Close() {
	_ = ch.server.Close()
}
