package testsCommon

import (
	"context"

	"github.com/andipradana/domain-monitor/services/monitor/common"
)

// CheckerStub -
type CheckerStub struct {
	CheckDomainHandler func(ctx context.Context, domain string) common.DomainCheckResult
}

// CheckDomain -
func (stub *CheckerStub) CheckDomain(ctx context.Context, domain string) common.DomainCheckResult {
	if stub.CheckDomainHandler != nil {
		return stub.CheckDomainHandler(ctx, domain)
	}

	return common.DomainCheckResult{}
}

// IsInterfaceNil -
func (stub *CheckerStub) IsInterfaceNil() bool {
	return stub == nil
}
