package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/andipradana/domain-monitor/services/agent/common"
	"github.com/andipradana/domain-monitor/services/agent/config"
	"github.com/andipradana/domain-monitor/services/agent/testsCommon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testBrandCfg = config.BrandConfig{
	Brand:       "slot603",
	ApiURL:      "https://remote/api/report",
	LocalApiURL: "http://local/api/report",
	Expired:     "2025-08-01",
	Status:      "aktif",
	Kategori:    "normal",
	ApiKey:      "SLOT603-KEY",
}

func TestNewReportEngine(t *testing.T) {
	t.Parallel()

	t.Run("nil builder should error", func(t *testing.T) {
		eng, err := NewReportEngine(testBrandCfg, nil, &testsCommon.SenderStub{})

		assert.Nil(t, eng)
		assert.True(t, eng.IsInterfaceNil())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "nil builder")
	})
	t.Run("nil sender should error", func(t *testing.T) {
		eng, err := NewReportEngine(testBrandCfg, &testsCommon.BuilderStub{}, nil)

		assert.Nil(t, eng)
		assert.True(t, eng.IsInterfaceNil())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "nil sender")
	})
	t.Run("should work", func(t *testing.T) {
		eng, err := NewReportEngine(testBrandCfg, &testsCommon.BuilderStub{}, &testsCommon.SenderStub{})

		assert.NotNil(t, eng)
		assert.False(t, eng.IsInterfaceNil())
		assert.Nil(t, err)
	})
}

func TestReportEngine_Process(t *testing.T) {
	t.Parallel()

	record := common.ReportRecord{
		Brand:   "slot603",
		Domain:  "example.com",
		Catatan: "Laporan otomatis dari agent - 2025-06-01T10:30:00Z",
		ApiKey:  "SLOT603-KEY",
	}
	builder := &testsCommon.BuilderStub{
		BuildReportHandler: func(cfg config.BrandConfig) (common.ReportRecord, error) {
			return record, nil
		},
	}

	t.Run("primary succeeds, fallback never called", func(t *testing.T) {
		var endpoints []string
		sender := &testsCommon.SenderStub{
			SendHandler: func(ctx context.Context, rec common.ReportRecord, endpoint string) error {
				endpoints = append(endpoints, endpoint)
				return nil
			},
		}

		eng, err := NewReportEngine(testBrandCfg, builder, sender)
		require.NoError(t, err)

		eng.Process(context.Background())

		require.Equal(t, []string{testBrandCfg.ApiURL}, endpoints)
	})
	t.Run("primary fails, fallback called once with the same record", func(t *testing.T) {
		var endpoints []string
		var records []common.ReportRecord
		sender := &testsCommon.SenderStub{
			SendHandler: func(ctx context.Context, rec common.ReportRecord, endpoint string) error {
				endpoints = append(endpoints, endpoint)
				records = append(records, rec)
				if endpoint == testBrandCfg.ApiURL {
					return errors.New("status 500")
				}
				return nil
			},
		}

		eng, _ := NewReportEngine(testBrandCfg, builder, sender)
		eng.Process(context.Background())

		require.Equal(t, []string{testBrandCfg.ApiURL, testBrandCfg.LocalApiURL}, endpoints)
		require.Len(t, records, 2)
		assert.Equal(t, records[0], records[1]) // same catatan timestamp on both
	})
	t.Run("both endpoints fail, nothing propagates and call can be repeated", func(t *testing.T) {
		numCalls := 0
		sender := &testsCommon.SenderStub{
			SendHandler: func(ctx context.Context, rec common.ReportRecord, endpoint string) error {
				numCalls++
				return errors.New("connection refused")
			},
		}

		eng, _ := NewReportEngine(testBrandCfg, builder, sender)
		eng.Process(context.Background())
		eng.Process(context.Background())

		assert.Equal(t, 4, numCalls)
	})
	t.Run("builder error skips the cycle, sender never called", func(t *testing.T) {
		failingBuilder := &testsCommon.BuilderStub{
			BuildReportHandler: func(cfg config.BrandConfig) (common.ReportRecord, error) {
				return common.ReportRecord{}, errors.New("no hostname")
			},
		}
		numCalls := 0
		sender := &testsCommon.SenderStub{
			SendHandler: func(ctx context.Context, rec common.ReportRecord, endpoint string) error {
				numCalls++
				return nil
			},
		}

		eng, _ := NewReportEngine(testBrandCfg, failingBuilder, sender)
		eng.Process(context.Background())

		assert.Zero(t, numCalls)
	})
}
