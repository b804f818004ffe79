package entities

// DashboardStats are the operator dashboard counters
type DashboardStats struct {
	TotalUniversities     int `json:"totalUniversities"`
	TotalUsers            int `json:"totalUsers"`
	TotalApplications     int `json:"totalApplications"`
	PendingScrapeJobs     int `json:"pendingScrapeJobs"`
	PendingScrapeRequests int `json:"pendingScrapeRequests"`
}
