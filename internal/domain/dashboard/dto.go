package dashboard

// AllSitesKey is the aggregate bucket in DashboardMetricsResponse.Sites.
const AllSitesKey = "all"

type DashboardMetricsResponse struct {
	Date  string                 `json:"date"`
	Sites map[string]SiteMetrics `json:"sites"`
}

// SiteMetrics counts employees currently on duty (clocked in today and not yet
// clocked out) against the site roster.
type SiteMetrics struct {
	SiteID               string  `json:"site_id"`
	SiteName             string  `json:"site_name"`
	AssignedEmployees    int     `json:"assigned_employees"`
	OnDuty               int     `json:"on_duty"`
	AttendancePercentage float64 `json:"attendance_percentage"`
	Reports              int     `json:"reports"`
}
