package api

import (
	"context"

	"github.com/andipradana/domain-monitor/services/monitor/common"
)

// Storage defines the interface for persisting and querying domains and reports
type Storage interface {
	// SaveReport inserts one report row received from an agent
	SaveReport(ctx context.Context, report common.Report) error

	// GetReports returns all retained reports, newest first
	GetReports(ctx context.Context) ([]common.Report, error)

	// AddDomain inserts one tracked domain row
	AddDomain(ctx context.Context, domain common.Domain) error

	// GetDomains returns all tracked domains, most recently added first
	GetDomains(ctx context.Context) ([]common.Domain, error)

	// UpdateDomain patches the provided fields of a domain row
	UpdateDomain(ctx context.Context, id int64, update common.DomainUpdate) error

	// DeleteDomain removes a domain row by ID
	DeleteDomain(ctx context.Context, id int64) error

	// GetDashboardStats computes the landing page counters
	GetDashboardStats(ctx context.Context) (common.DashboardStats, error)

	// Close shuts down the database connection
	Close() error

	IsInterfaceNil() bool
}

// Checker defines the interface for probing a domain's accessibility
type Checker interface {
	CheckDomain(ctx context.Context, domain string) common.DomainCheckResult

	IsInterfaceNil() bool
}
