package testsCommon

import (
	"github.com/andipradana/domain-monitor/services/agent/common"
	"github.com/andipradana/domain-monitor/services/agent/config"
)

// BuilderStub -
type BuilderStub struct {
	BuildReportHandler func(cfg config.BrandConfig) (common.ReportRecord, error)
}

// BuildReport -
func (stub *BuilderStub) BuildReport(cfg config.BrandConfig) (common.ReportRecord, error) {
	if stub.BuildReportHandler != nil {
		return stub.BuildReportHandler(cfg)
	}

	return common.ReportRecord{}, nil
}

// IsInterfaceNil -
func (stub *BuilderStub) IsInterfaceNil() bool {
	return stub == nil
}
