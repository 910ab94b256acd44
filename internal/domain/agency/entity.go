package agency

// Agency is a tenant. Agencies are managed elsewhere; this service only
// enumerates them for scheduled jobs.
type Agency struct {
	ID   string
	Name string
}
