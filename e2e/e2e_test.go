package e2e_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	agentBuilder "github.com/andipradana/domain-monitor/services/agent/builder"
	agentCfg "github.com/andipradana/domain-monitor/services/agent/config"
	agentEngine "github.com/andipradana/domain-monitor/services/agent/engine"
	agentReporter "github.com/andipradana/domain-monitor/services/agent/reporter"
	"github.com/andipradana/domain-monitor/services/agent/testsCommon"
	monitorCfg "github.com/andipradana/domain-monitor/services/monitor/config"
	monitorFactory "github.com/andipradana/domain-monitor/services/monitor/factory"
	logger "github.com/multiversx/mx-chain-logger-go"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

var log = logger.GetOrCreate("e2e-test")

func TestE2EFlow(t *testing.T) {
	log.Info("======== 1. Prepare SQLite path for the monitor service")
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "e2e_sqlite.db")

	log.Info("======== 2. Start the monitor service via componentsHandler")
	monitorConfig := monitorCfg.Config{
		ListenAddress:         "127.0.0.1:0",
		RetentionSeconds:      3600,
		RateLimitPerMinute:    100,
		CheckTimeoutInSeconds: 5,
	}

	monitorHandler, err := monitorFactory.NewComponentsHandler(
		dbPath,
		map[string]string{"slot603": "SLOT603-KEY"},
		"admin",
		"password",
		monitorConfig,
	)
	require.NoError(t, err)

	monitorHandler.Start()
	defer monitorHandler.Close()

	_, port, err := net.SplitHostPort(monitorHandler.GetServer().Address())
	require.NoError(t, err)
	monitorURL := fmt.Sprintf("http://127.0.0.1:%s", port)

	log.Info("======== 2.1. Wait a moment for server to start")
	time.Sleep(100 * time.Millisecond)

	log.Info("======== 3. Prepare a dead primary endpoint")
	deadServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadURL := deadServer.URL
	deadServer.Close() // connection refused from now on

	log.Info("======== 4. Assemble the agent components with an injected environment")
	env := &testsCommon.EnvironmentStub{
		HostnameHandler: func() (string, error) {
			return "example.com", nil
		},
		NowHandler: func() time.Time {
			return time.Now()
		},
	}
	builder, err := agentBuilder.NewReportBuilder(env)
	require.NoError(t, err)

	sender := agentReporter.NewHTTPReporter("DomainMonitorAgent/e2e", 2*time.Second)

	brandCfg := agentCfg.BrandConfig{
		Brand:       "slot603",
		ApiURL:      deadURL,
		LocalApiURL: monitorURL + "/api/report",
		Expired:     "2025-08-01",
		Status:      "aktif",
		Kategori:    "normal",
		ApiKey:      "SLOT603-KEY",
	}

	log.Info("======== 5. Run a cycle: the dead primary forces the fallback delivery")
	fallbackEngine, err := agentEngine.NewReportEngine(brandCfg, builder, sender)
	require.NoError(t, err)
	fallbackEngine.Process(context.Background())

	log.Info("======== 6. Run a cycle with the monitor as primary")
	brandCfg.ApiURL = monitorURL + "/api/report"
	primaryEngine, err := agentEngine.NewReportEngine(brandCfg, builder, sender)
	require.NoError(t, err)
	primaryEngine.Process(context.Background())

	log.Info("======== 7. Login to get JWT")
	loginBody := []byte(`{"username":"admin", "password":"password"}`)
	respLogin, err := http.Post(monitorURL+"/api/auth/login", "application/json", bytes.NewBuffer(loginBody))
	require.NoError(t, err)
	defer func() {
		_ = respLogin.Body.Close()
	}()
	require.Equal(t, http.StatusOK, respLogin.StatusCode)

	loginBytes, _ := io.ReadAll(respLogin.Body)
	token := gjson.GetBytes(loginBytes, "token").String()
	require.NotEmpty(t, token)

	log.Info("======== 8. Fetch the received reports")
	client := &http.Client{}
	reqReports, err := http.NewRequest(http.MethodGet, monitorURL+"/api/reports", nil)
	require.NoError(t, err)
	reqReports.Header.Set("Authorization", "Bearer "+token)

	respReports, err := client.Do(reqReports)
	require.NoError(t, err)
	defer func() {
		_ = respReports.Body.Close()
	}()
	require.Equal(t, http.StatusOK, respReports.StatusCode)

	reportsBytes, _ := io.ReadAll(respReports.Body)
	require.Equal(t, int64(2), gjson.GetBytes(reportsBytes, "count").Int())
	require.Equal(t, "example.com", gjson.GetBytes(reportsBytes, "reports.0.domain").String())
	require.Equal(t, "slot603", gjson.GetBytes(reportsBytes, "reports.0.brand").String())
	require.Contains(t, gjson.GetBytes(reportsBytes, "reports.0.catatan").String(), "Laporan otomatis dari agent")

	log.Info("======== 9. Verify the dashboard counters")
	reqStats, err := http.NewRequest(http.MethodGet, monitorURL+"/api/dashboard/stats", nil)
	require.NoError(t, err)
	reqStats.Header.Set("Authorization", "Bearer "+token)

	respStats, err := client.Do(reqStats)
	require.NoError(t, err)
	defer func() {
		_ = respStats.Body.Close()
	}()
	require.Equal(t, http.StatusOK, respStats.StatusCode)

	statsBytes, _ := io.ReadAll(respStats.Body)
	require.Equal(t, int64(2), gjson.GetBytes(statsBytes, "stats.today_reports").Int())

	log.Info("======== 10. Health endpoint answers without authentication")
	respHealth, err := http.Get(monitorURL + "/health")
	require.NoError(t, err)
	defer func() {
		_ = respHealth.Body.Close()
	}()
	require.Equal(t, http.StatusOK, respHealth.StatusCode)

	healthBytes, _ := io.ReadAll(respHealth.Body)
	require.Equal(t, "healthy", gjson.GetBytes(healthBytes, "status").String())
}
