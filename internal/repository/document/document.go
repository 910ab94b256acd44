// Package document implements the domain repositories on top of a docstore.Store.
// Records are stored with camelCase keys and ISO-8601 UTC timestamps.
package document

import (
	"errors"
	"fmt"
	"time"

	"github.com/securefront/workforce-backend-go/internal/pkg/docstore"
	"github.com/securefront/workforce-backend-go/internal/pkg/timeutil"
)

// notFound maps a store miss onto the domain error of the caller.
func notFound(err, domainErr error) error {
	if errors.Is(err, docstore.ErrNotFound) {
		return domainErr
	}
	return err
}

func parseTime(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := timeutil.ParseUTC(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", field, err)
	}
	return t, nil
}

func parseTimePtr(field string, value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := timeutil.ParseUTC(*value)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", field, err)
	}
	return &t, nil
}

// decodeAll converts every document with fn, stopping at the first failure.
func decodeAll[T any](docs []docstore.Document, fn func(docstore.Document) (T, error)) ([]T, error) {
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		v, err := fn(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
