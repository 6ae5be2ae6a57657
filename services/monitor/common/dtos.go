package common

import "regexp"

var domainPattern = regexp.MustCompile(`^(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}$`)

// ValidateDomain tells if the provided string is a well-formed domain name
func ValidateDomain(domain string) bool {
	return domainPattern.MatchString(domain)
}

// Domain represents a tracked domain row
type Domain struct {
	ID          int64  `json:"id"`
	Domain      string `json:"domain"`
	Brand       string `json:"brand"`
	Status      string `json:"status"`
	Kategori    string `json:"kategori"`
	ExpiredDate string `json:"expired_date"`
	Catatan     string `json:"catatan"`
	CreatedAt   int64  `json:"created_at"`
	UpdatedAt   int64  `json:"updated_at"`
}

// Report represents one report row received from an agent
type Report struct {
	ID          int64  `json:"id"`
	Receipt     string `json:"receipt"`
	Domain      string `json:"domain"`
	Brand       string `json:"brand"`
	Status      string `json:"status"`
	Kategori    string `json:"kategori"`
	ExpiredDate string `json:"expired_date"`
	Catatan     string `json:"catatan"`
	// the credential is stored for audit but never listed back through the API
	ApiKey     string `json:"-"`
	ReportedAt int64  `json:"reported_at"`
}

// DomainUpdate holds the optional fields of a domain update request. Nil
// pointers leave the corresponding column untouched.
type DomainUpdate struct {
	Domain      *string `json:"domain"`
	Brand       *string `json:"brand"`
	Status      *string `json:"status"`
	Kategori    *string `json:"kategori"`
	ExpiredDate *string `json:"expired_date"`
	Catatan     *string `json:"catatan"`
}

// DashboardStats aggregates the counters shown on the dashboard landing page
type DashboardStats struct {
	TotalDomains  int            `json:"total_domains"`
	ActiveDomains int            `json:"active_domains"`
	BrandStats    map[string]int `json:"brand_stats"`
	TodayReports  int            `json:"today_reports"`
}

// DomainCheckResult describes the outcome of probing a domain
type DomainCheckResult struct {
	Domain      string `json:"domain"`
	Status      string `json:"status"`
	StatusCode  int    `json:"status_code"`
	Accessible  bool   `json:"accessible"`
	HealthValue string `json:"health_value,omitempty"`
}
