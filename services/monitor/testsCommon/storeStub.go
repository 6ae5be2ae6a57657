package testsCommon

import (
	"context"

	"github.com/andipradana/domain-monitor/services/monitor/common"
)

// StoreStub -
type StoreStub struct {
	SaveReportHandler        func(ctx context.Context, report common.Report) error
	GetReportsHandler        func(ctx context.Context) ([]common.Report, error)
	AddDomainHandler         func(ctx context.Context, domain common.Domain) error
	GetDomainsHandler        func(ctx context.Context) ([]common.Domain, error)
	UpdateDomainHandler      func(ctx context.Context, id int64, update common.DomainUpdate) error
	DeleteDomainHandler      func(ctx context.Context, id int64) error
	GetDashboardStatsHandler func(ctx context.Context) (common.DashboardStats, error)
	CloseHandler             func() error
}

// SaveReport -
func (stub *StoreStub) SaveReport(ctx context.Context, report common.Report) error {
	if stub.SaveReportHandler != nil {
		return stub.SaveReportHandler(ctx, report)
	}

	return nil
}

// GetReports -
func (stub *StoreStub) GetReports(ctx context.Context) ([]common.Report, error) {
	if stub.GetReportsHandler != nil {
		return stub.GetReportsHandler(ctx)
	}

	return make([]common.Report, 0), nil
}

// AddDomain -
func (stub *StoreStub) AddDomain(ctx context.Context, domain common.Domain) error {
	if stub.AddDomainHandler != nil {
		return stub.AddDomainHandler(ctx, domain)
	}

	return nil
}

// GetDomains -
func (stub *StoreStub) GetDomains(ctx context.Context) ([]common.Domain, error) {
	if stub.GetDomainsHandler != nil {
		return stub.GetDomainsHandler(ctx)
	}

	return make([]common.Domain, 0), nil
}

// UpdateDomain -
func (stub *StoreStub) UpdateDomain(ctx context.Context, id int64, update common.DomainUpdate) error {
	if stub.UpdateDomainHandler != nil {
		return stub.UpdateDomainHandler(ctx, id, update)
	}

	return nil
}

// DeleteDomain -
func (stub *StoreStub) DeleteDomain(ctx context.Context, id int64) error {
	if stub.DeleteDomainHandler != nil {
		return stub.DeleteDomainHandler(ctx, id)
	}

	return nil
}

// GetDashboardStats -
func (stub *StoreStub) GetDashboardStats(ctx context.Context) (common.DashboardStats, error) {
	if stub.GetDashboardStatsHandler != nil {
		return stub.GetDashboardStatsHandler(ctx)
	}

	return common.DashboardStats{}, nil
}

// Close -
func (stub *StoreStub) Close() error {
	if stub.CloseHandler != nil {
		return stub.CloseHandler()
	}

	return nil
}

// IsInterfaceNil -
func (stub *StoreStub) IsInterfaceNil() bool {
	return stub == nil
}
