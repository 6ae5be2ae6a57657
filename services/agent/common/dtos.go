package common

// ReportRecord is the payload sent to the reporting endpoints. The field names
// and their JSON tags match what the backend's /api/report route expects.
type ReportRecord struct {
	Brand    string `json:"brand"`
	Domain   string `json:"domain"`
	Expired  string `json:"expired"`
	Status   string `json:"status"`
	Kategori string `json:"kategori"`
	Catatan  string `json:"catatan"`
	ApiKey   string `json:"api_key"`
}
