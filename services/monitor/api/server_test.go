package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/andipradana/domain-monitor/services/monitor/common"
	"github.com/andipradana/domain-monitor/services/monitor/storage"
	"github.com/andipradana/domain-monitor/services/monitor/testsCommon"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func setupTestServer(t *testing.T) (*server, Storage) {
	store, err := storage.NewSQLiteStorage(":memory:", 3600)
	require.NoError(t, err)

	args := ArgsWebServer{
		BrandKeys: map[string]string{
			"slot603": "SLOT603-KEY",
			"netpro":  "NETPRO-KEY",
		},
		AuthUsername:   "admin",
		AuthPassword:   "password",
		ListenAddress:  ":0",
		Storage:        store,
		Checker:        &testsCommon.CheckerStub{},
		GeneralHandler: func(h http.Handler) http.Handler { return h },
	}

	serv, err := NewServer(args)
	require.NoError(t, err)

	return serv, store
}

func validReportBody() []byte {
	body, _ := json.Marshal(ReportSubmission{
		Domain:   "example.com",
		Brand:    "slot603",
		Status:   "aktif",
		Kategori: "normal",
		Expired:  "2025-08-01",
		Catatan:  "Laporan otomatis dari agent - 2025-06-01T10:30:00Z",
		ApiKey:   "SLOT603-KEY",
	})

	return body
}

func TestReportEndpoint(t *testing.T) {
	serv, store := setupTestServer(t)
	defer func() {
		_ = store.Close()
	}()

	// Wrong api key
	wrongKey, _ := json.Marshal(ReportSubmission{
		Domain: "example.com",
		Brand:  "slot603",
		ApiKey: "WRONG-KEY",
	})
	req, _ := http.NewRequest("POST", "/api/report", bytes.NewBuffer(wrongKey))
	w := httptest.NewRecorder()
	serv.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// Unknown brand
	unknownBrand, _ := json.Marshal(ReportSubmission{
		Domain: "example.com",
		Brand:  "nosuchbrand",
		ApiKey: "SLOT603-KEY",
	})
	req, _ = http.NewRequest("POST", "/api/report", bytes.NewBuffer(unknownBrand))
	w = httptest.NewRecorder()
	serv.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// Invalid domain format
	badDomain, _ := json.Marshal(ReportSubmission{
		Domain: "not a domain",
		Brand:  "slot603",
		ApiKey: "SLOT603-KEY",
	})
	req, _ = http.NewRequest("POST", "/api/report", bytes.NewBuffer(badDomain))
	w = httptest.NewRecorder()
	serv.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Valid report
	req, _ = http.NewRequest("POST", "/api/report", bytes.NewBuffer(validReportBody()))
	w = httptest.NewRecorder()
	serv.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, gjson.GetBytes(w.Body.Bytes(), "receipt").String())

	// Verify it reached DB
	reports, err := store.GetReports(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 1)
	require.Equal(t, "example.com", reports[0].Domain)
	require.Equal(t, "slot603", reports[0].Brand)
}

func TestSubmitDomainEndpoint(t *testing.T) {
	serv, store := setupTestServer(t)
	defer func() {
		_ = store.Close()
	}()

	body, _ := json.Marshal(DomainSubmission{
		Domain: "example.com",
		Brand:  "netpro",
	})
	req, _ := http.NewRequest("POST", "/api/submit-domain", bytes.NewBuffer(body))
	w := httptest.NewRecorder()
	serv.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	domains, err := store.GetDomains(context.Background())
	require.NoError(t, err)
	require.Len(t, domains, 1)
	// defaults applied when status/kategori omitted
	require.Equal(t, "aktif", domains[0].Status)
	require.Equal(t, "normal", domains[0].Kategori)

	// unknown brand is rejected
	body, _ = json.Marshal(DomainSubmission{
		Domain: "example.com",
		Brand:  "nosuchbrand",
	})
	req, _ = http.NewRequest("POST", "/api/submit-domain", bytes.NewBuffer(body))
	w = httptest.NewRecorder()
	serv.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func getValidToken(t *testing.T, serv *server) string {
	loginBody := `{"username":"admin", "password":"password"}`
	req, _ := http.NewRequest("POST", "/api/auth/login", bytes.NewBuffer([]byte(loginBody)))
	w := httptest.NewRecorder()
	serv.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	token := gjson.GetBytes(w.Body.Bytes(), "token").String()
	require.NotEmpty(t, token)

	return token
}

func TestLoginAndProtectedEndpoints(t *testing.T) {
	serv, store := setupTestServer(t)
	defer func() {
		_ = store.Close()
	}()

	// Seed DB with a domain and a report
	req, _ := http.NewRequest("POST", "/api/report", bytes.NewBuffer(validReportBody()))
	w := httptest.NewRecorder()
	serv.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// Protected endpoint without token
	req, _ = http.NewRequest("GET", "/api/reports", nil)
	w = httptest.NewRecorder()
	serv.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// With token
	token := getValidToken(t, serv)
	req, _ = http.NewRequest("GET", "/api/reports", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	serv.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	require.Equal(t, int64(1), gjson.GetBytes(w.Body.Bytes(), "count").Int())
	require.Equal(t, "example.com", gjson.GetBytes(w.Body.Bytes(), "reports.0.domain").String())
	// credential never listed back
	require.False(t, gjson.GetBytes(w.Body.Bytes(), "reports.0.api_key").Exists())

	// Dashboard stats
	req, _ = http.NewRequest("GET", "/api/dashboard/stats", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	serv.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, int64(1), gjson.GetBytes(w.Body.Bytes(), "stats.today_reports").Int())
}

func TestDomainCheckEndpoint(t *testing.T) {
	serv, store := setupTestServer(t)
	defer func() {
		_ = store.Close()
	}()

	serv.checker = &testsCommon.CheckerStub{
		CheckDomainHandler: func(ctx context.Context, domain string) common.DomainCheckResult {
			return common.DomainCheckResult{
				Domain:     domain,
				Status:     "aktif",
				StatusCode: http.StatusOK,
				Accessible: true,
			}
		},
	}

	token := getValidToken(t, serv)
	req, _ := http.NewRequest("GET", "/api/domain-check/example.com", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	serv.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	require.Equal(t, "example.com", gjson.GetBytes(w.Body.Bytes(), "domain").String())
	require.True(t, gjson.GetBytes(w.Body.Bytes(), "accessible").Bool())
}

func TestHealthEndpoint(t *testing.T) {
	serv, store := setupTestServer(t)
	defer func() {
		_ = store.Close()
	}()

	req, _ := http.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	serv.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "healthy", gjson.GetBytes(w.Body.Bytes(), "status").String())
}
