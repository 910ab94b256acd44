// Package docstore defines the document store every repository persists through.
package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/securefront/workforce-backend-go/internal/pkg/apperror"
	"github.com/securefront/workforce-backend-go/internal/pkg/timeutil"
)

// Collections used by the repositories.
const (
	CollectionAgencies      = "agencies"
	CollectionSites         = "sites"
	CollectionEmployees     = "employees"
	CollectionShifts        = "shifts"
	CollectionAttendance    = "attendance"
	CollectionHourlyReports = "hourly_reports"
	CollectionDevices       = "devices"
	CollectionNotifications = "notifications"
)

// Reserved document fields.
const (
	FieldID        = "id"
	FieldCreatedAt = "createdAt"
	FieldUpdatedAt = "updatedAt"
)

var ErrNotFound = apperror.New(apperror.ErrNotFound, "DOCUMENT_NOT_FOUND", "document not found")

// Document is a JSON-shaped record. Values are limited to what encoding/json
// produces: string, float64, bool, nil, []any and map[string]any.
type Document map[string]any

// Store is a minimal document database.
type Store interface {
	// Get returns the document or ErrNotFound.
	Get(ctx context.Context, collection, id string) (Document, error)

	// Put inserts doc, assigning id (unless one is set), createdAt and updatedAt.
	Put(ctx context.Context, collection string, doc Document) (Document, error)

	// Update merges partial into the stored document atomically and bumps updatedAt.
	// Keys mapped to nil are stored as null.
	Update(ctx context.Context, collection, id string, partial Document) (Document, error)

	// QueryByField returns all documents whose top-level field equals value.
	QueryByField(ctx context.Context, collection, field string, value any) ([]Document, error)

	// List returns every document of the collection.
	List(ctx context.Context, collection string) ([]Document, error)

	// Delete removes the document or returns ErrNotFound.
	Delete(ctx context.Context, collection, id string) error
}

// Now is the clock used for createdAt/updatedAt stamps.
var Now = func() time.Time { return time.Now().UTC() }

// NewID returns a time-ordered document id.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// PrepareInsert copies doc and stamps the reserved fields.
func PrepareInsert(doc Document) (Document, error) {
	out, err := Normalize(doc)
	if err != nil {
		return nil, err
	}
	if id, _ := out[FieldID].(string); id == "" {
		out[FieldID] = NewID()
	}
	now := timeutil.FormatUTC(Now())
	out[FieldCreatedAt] = now
	out[FieldUpdatedAt] = now
	return out, nil
}

// PrepareUpdate copies partial, drops fields that may not change and stamps updatedAt.
func PrepareUpdate(partial Document) (Document, error) {
	out, err := Normalize(partial)
	if err != nil {
		return nil, err
	}
	delete(out, FieldID)
	delete(out, FieldCreatedAt)
	out[FieldUpdatedAt] = timeutil.FormatUTC(Now())
	return out, nil
}

// Normalize returns a deep copy of doc reduced to plain JSON values.
func Normalize(doc Document) (Document, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	out := Document{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return out, nil
}

// NormalizeValue reduces a query value to its JSON form so that comparisons
// behave identically across store implementations.
func NormalizeValue(value any) (any, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to encode value: %w", err)
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode value: %w", err)
	}
	return out, nil
}

// Encode converts a typed record into a Document through its JSON form.
func Encode(v any) (Document, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	doc := Document{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return doc, nil
}

// Decode fills v from doc through its JSON form.
func Decode(doc Document, v any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to decode document: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to decode document: %w", err)
	}
	return nil
}

// String reads a string field, returning "" when absent or not a string.
func (d Document) String(field string) string {
	s, _ := d[field].(string)
	return s
}

// ID returns the document id.
func (d Document) ID() string {
	return d.String(FieldID)
}
