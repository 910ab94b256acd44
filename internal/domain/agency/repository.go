package agency

import "context"

type AgencyRepository interface {
	List(ctx context.Context) ([]Agency, error)
}
