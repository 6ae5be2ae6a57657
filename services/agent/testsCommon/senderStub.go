package testsCommon

import (
	"context"

	"github.com/andipradana/domain-monitor/services/agent/common"
)

// SenderStub -
type SenderStub struct {
	SendHandler func(ctx context.Context, record common.ReportRecord, endpoint string) error
}

// Send -
func (stub *SenderStub) Send(ctx context.Context, record common.ReportRecord, endpoint string) error {
	if stub.SendHandler != nil {
		return stub.SendHandler(ctx, record, endpoint)
	}

	return nil
}

// IsInterfaceNil -
func (stub *SenderStub) IsInterfaceNil() bool {
	return stub == nil
}
