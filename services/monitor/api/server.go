package api

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"path"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/andipradana/domain-monitor/services/monitor/common"
	"github.com/andipradana/domain-monitor/services/monitor/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/multiversx/mx-chain-core-go/core/check"
	logger "github.com/multiversx/mx-chain-logger-go"
)

var log = logger.GetOrCreate("api")

const defaultStatus = "aktif"
const defaultKategori = "normal"

type server struct {
	router         *gin.Engine
	httpServer     *http.Server
	storage        Storage
	checker        Checker
	brandKeys      map[string]string
	username       string
	password       string
	listenAddr     string
	staticDir      string
	jwtSecret      []byte
	generalHandler func(http.Handler) http.Handler
	wg             sync.WaitGroup
}

// ReportSubmission represents the incoming JSON body on /api/report, mirroring
// the record the agents send
type ReportSubmission struct {
	Domain   string `json:"domain"`
	Brand    string `json:"brand"`
	Status   string `json:"status"`
	Kategori string `json:"kategori"`
	Expired  string `json:"expired"`
	Catatan  string `json:"catatan"`
	ApiKey   string `json:"api_key"`
}

// DomainSubmission represents the incoming JSON body on /api/submit-domain
type DomainSubmission struct {
	Domain   string `json:"domain"`
	Brand    string `json:"brand"`
	Status   string `json:"status"`
	Kategori string `json:"kategori"`
	Expired  string `json:"expired"`
	Catatan  string `json:"catatan"`
}

// ArgsWebServer defines the web server arguments
type ArgsWebServer struct {
	BrandKeys          map[string]string
	AuthUsername       string
	AuthPassword       string
	ListenAddress      string
	StaticDir          string
	RateLimitPerMinute int
	Storage            Storage
	Checker            Checker
	GeneralHandler     func(http.Handler) http.Handler
}

// NewServer initializes the Gin engine and mounts all routes
func NewServer(args ArgsWebServer) (*server, error) {
	if check.IfNil(args.Storage) {
		return nil, errors.New("storage is required")
	}
	if check.IfNil(args.Checker) {
		return nil, errors.New("checker is required")
	}
	if args.GeneralHandler == nil {
		return nil, errors.New("nil http handler")
	}
	if len(args.BrandKeys) == 0 {
		return nil, errors.New("no brand keys configured")
	}

	// Derive JWT secret from the auth password + random salt
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	h := hmac.New(sha256.New, []byte(args.AuthPassword))
	h.Write(salt)
	jwtSecret := h.Sum(nil)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(gin.Recovery())

	s := &server{
		router:         router,
		storage:        args.Storage,
		checker:        args.Checker,
		brandKeys:      args.BrandKeys,
		username:       args.AuthUsername,
		password:       args.AuthPassword,
		listenAddr:     args.ListenAddress,
		staticDir:      args.StaticDir,
		generalHandler: args.GeneralHandler,
		jwtSecret:      jwtSecret,
	}

	s.setupRoutes(args.RateLimitPerMinute)
	return s, nil
}

func (s *server) setupRoutes(rateLimitPerMinute int) {
	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api")

	// Agent reporting endpoint, authenticated by the per-brand key in the body
	reportHandlers := []gin.HandlerFunc{}
	if rateLimitPerMinute > 0 {
		reportHandlers = append(reportHandlers, newRateLimiter(rateLimitPerMinute).middleware())
	}
	reportHandlers = append(reportHandlers, s.handleReport)
	api.POST("/report", reportHandlers...)

	// Internal domain submission (from the dashboard)
	api.POST("/submit-domain", s.handleSubmitDomain)

	// Frontend authentication
	api.POST("/auth/login", s.handleLogin)

	// Protected frontend endpoints
	protected := api.Group("/")
	protected.Use(s.authJWT())
	{
		protected.GET("/domains", s.handleGetDomains)
		protected.PUT("/domains/:id", s.handleUpdateDomain)
		protected.DELETE("/domains/:id", s.handleDeleteDomain)
		protected.GET("/reports", s.handleGetReports)
		protected.GET("/dashboard/stats", s.handleDashboardStats)
		protected.GET("/domain-check/:domain", s.handleDomainCheck)
	}

	// Serve static files from the frontend build if configured
	if s.staticDir != "" {
		log.Info("serving static files", "dir", s.staticDir)
		s.router.Static("/static", path.Join(s.staticDir, "static"))
		s.router.StaticFile("/favicon.ico", path.Join(s.staticDir, "favicon.ico"))

		// NoRoute for SPA fallback
		s.router.NoRoute(func(c *gin.Context) {
			// If request is for an /api route that doesn't exist, return 404
			if strings.HasPrefix(c.Request.URL.Path, "/api") {
				c.JSON(http.StatusNotFound, gin.H{"error": "api route not found"})
				return
			}
			// Otherwise serve index.html for CSR
			c.File(path.Join(s.staticDir, "index.html"))
		})
	}
}

// Start listens and serves connections
func (s *server) Start() {
	handler := s.generalHandler(s.router)

	s.httpServer = &http.Server{
		Addr:    s.listenAddr,
		Handler: handler,
	}

	ln, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		log.Error("failed to listen", "error", err)
		return
	}
	s.listenAddr = ln.Addr().String()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		log.Info("starting HTTP server", "address", s.listenAddr)

		err := s.httpServer.Serve(ln)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "error", err)
		}
	}()
}

// Address returns the actual listen address
func (s *server) Address() string {
	return s.listenAddr
}

// Close gracefully stops the server
func (s *server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return err
		}
	}
	s.wg.Wait()
	return s.storage.Close()
}

// --- Middlewares ---

// VERY basic JWT implementation for frontend session based on HS256
func (s *server) authJWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			c.Abort()
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		parts := strings.Split(tokenStr, ".")
		if len(parts) != 3 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		// Verify signature
		message := parts[0] + "." + parts[1]
		sig, err := base64.RawURLEncoding.DecodeString(parts[2])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token sign"})
			c.Abort()
			return
		}

		macd := hmac.New(sha256.New, s.jwtSecret)
		macd.Write([]byte(message))
		expectedSig := macd.Sum(nil)

		if !hmac.Equal(sig, expectedSig) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		// Verify expiration
		var claims struct {
			Exp int64 `json:"exp"`
		}
		payloadBytes, err := base64.RawURLEncoding.DecodeString(parts[1])
		if err == nil {
			_ = json.Unmarshal(payloadBytes, &claims)
		}

		if time.Now().Unix() > claims.Exp {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "token expired"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// --- Handlers ---

func (s *server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (s *server) handleReport(c *gin.Context) {
	var payload ReportSubmission
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	expectedKey, knownBrand := s.brandKeys[payload.Brand]
	if !knownBrand || payload.ApiKey != expectedKey {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid api key"})
		return
	}

	if !common.ValidateDomain(payload.Domain) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid domain format"})
		return
	}

	log.Debug("received report", "sender", c.Request.RemoteAddr, "brand", payload.Brand, "domain", payload.Domain)

	receipt := uuid.NewString()
	report := common.Report{
		Receipt:     receipt,
		Domain:      payload.Domain,
		Brand:       payload.Brand,
		Status:      payload.Status,
		Kategori:    payload.Kategori,
		ExpiredDate: payload.Expired,
		Catatan:     payload.Catatan,
		ApiKey:      payload.ApiKey,
		ReportedAt:  time.Now().Unix(),
	}

	err := s.storage.SaveReport(c.Request.Context(), report)
	if err != nil {
		log.Warn("failed to save report", "brand", payload.Brand, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save report"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Report received successfully",
		"domain":    payload.Domain,
		"brand":     payload.Brand,
		"receipt":   receipt,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (s *server) handleSubmitDomain(c *gin.Context) {
	var payload DomainSubmission
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if !common.ValidateDomain(payload.Domain) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid domain format"})
		return
	}

	_, knownBrand := s.brandKeys[payload.Brand]
	if !knownBrand {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid brand"})
		return
	}

	if payload.Status == "" {
		payload.Status = defaultStatus
	}
	if payload.Kategori == "" {
		payload.Kategori = defaultKategori
	}

	domain := common.Domain{
		Domain:      payload.Domain,
		Brand:       payload.Brand,
		Status:      payload.Status,
		Kategori:    payload.Kategori,
		ExpiredDate: payload.Expired,
		Catatan:     payload.Catatan,
	}

	err := s.storage.AddDomain(c.Request.Context(), domain)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save domain"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Domain berhasil ditambahkan",
		"domain":    payload.Domain,
		"brand":     payload.Brand,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (s *server) handleLogin(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if req.Username != s.username || req.Password != s.password {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	// Generate basic JWT (Header.Payload.Signature)
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	claims := fmt.Sprintf(`{"sub":"%s","exp":%d}`, req.Username, time.Now().Add(24*time.Hour).Unix())
	payload := base64.RawURLEncoding.EncodeToString([]byte(claims))

	msg := header + "." + payload
	macd := hmac.New(sha256.New, s.jwtSecret)
	macd.Write([]byte(msg))
	sig := base64.RawURLEncoding.EncodeToString(macd.Sum(nil))

	token := msg + "." + sig
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (s *server) handleGetDomains(c *gin.Context) {
	domains, err := s.storage.GetDomains(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if domains == nil {
		domains = make([]common.Domain, 0)
	}

	c.JSON(http.StatusOK, gin.H{"domains": domains, "count": len(domains)})
}

func (s *server) handleUpdateDomain(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid domain id"})
		return
	}

	var update common.DomainUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	err = s.storage.UpdateDomain(c.Request.Context(), id, update)
	if errors.Is(err, storage.ErrDomainNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "domain not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Domain updated successfully", "domain_id": id})
}

func (s *server) handleDeleteDomain(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid domain id"})
		return
	}

	err = s.storage.DeleteDomain(c.Request.Context(), id)
	if errors.Is(err, storage.ErrDomainNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "domain not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Domain deleted successfully", "domain_id": id})
}

func (s *server) handleGetReports(c *gin.Context) {
	reports, err := s.storage.GetReports(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if reports == nil {
		reports = make([]common.Report, 0)
	}

	c.JSON(http.StatusOK, gin.H{"reports": reports, "count": len(reports)})
}

func (s *server) handleDashboardStats(c *gin.Context) {
	stats, err := s.storage.GetDashboardStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

func (s *server) handleDomainCheck(c *gin.Context) {
	domain := c.Param("domain")
	if !common.ValidateDomain(domain) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid domain format"})
		return
	}

	result := s.checker.CheckDomain(c.Request.Context(), domain)
	c.JSON(http.StatusOK, result)
}
