package postgresql_test_test

import (
	"context"
	"sync"
	"testing"

	"github.com/securefront/workforce-backend-go/internal/pkg/docstore"
	. "github.com/securefront/workforce-backend-go/internal/repository/postgresql/postgresql_test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentStore_PutGet(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()

	doc, err := setup.Store.Put(ctx, docstore.CollectionSites, docstore.Document{
		"agencyId": "agency-1",
		"name":     "North Gate",
		"boundary": []any{map[string]any{"lat": 1.0, "lng": 2.0}},
	})
	require.NoError(t, err)
	require.NotEmpty(t, doc.ID())

	got, err := setup.Store.Get(ctx, docstore.CollectionSites, doc.ID())
	require.NoError(t, err)
	assert.Equal(t, "North Gate", got.String("name"))
	assert.Equal(t, doc[docstore.FieldCreatedAt], got[docstore.FieldCreatedAt])
}

func TestDocumentStore_GetNotFound(t *testing.T) {
	setup := NewTestDatabase(t)

	_, err := setup.Store.Get(context.Background(), docstore.CollectionSites, "missing")
	assert.ErrorIs(t, err, docstore.ErrNotFound)
}

func TestDocumentStore_UpdateMerges(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()

	doc, err := setup.Store.Put(ctx, docstore.CollectionShifts, docstore.Document{"status": "scheduled", "siteId": "s1"})
	require.NoError(t, err)

	updated, err := setup.Store.Update(ctx, docstore.CollectionShifts, doc.ID(), docstore.Document{"status": "completed"})
	require.NoError(t, err)
	assert.Equal(t, "completed", updated["status"])
	assert.Equal(t, "s1", updated["siteId"])
	assert.Equal(t, doc.ID(), updated.ID())

	_, err = setup.Store.Update(ctx, docstore.CollectionShifts, "missing", docstore.Document{"status": "x"})
	assert.ErrorIs(t, err, docstore.ErrNotFound)
}

func TestDocumentStore_QueryListDelete(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()

	for _, agency := range []string{"a1", "a1", "a2"} {
		_, err := setup.Store.Put(ctx, docstore.CollectionShifts, docstore.Document{"agencyId": agency})
		require.NoError(t, err)
	}

	docs, err := setup.Store.QueryByField(ctx, docstore.CollectionShifts, "agencyId", "a1")
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	all, err := setup.Store.List(ctx, docstore.CollectionShifts)
	require.NoError(t, err)
	require.Len(t, all, 3)

	require.NoError(t, setup.Store.Delete(ctx, docstore.CollectionShifts, all[0].ID()))
	assert.ErrorIs(t, setup.Store.Delete(ctx, docstore.CollectionShifts, all[0].ID()), docstore.ErrNotFound)
}

func TestDocumentStore_ConcurrentUpdatesKeepAllKeys(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()

	doc, err := setup.Store.Put(ctx, docstore.CollectionAttendance, docstore.Document{})
	require.NoError(t, err)

	keys := []string{"a", "b", "c", "d", "e"}
	var wg sync.WaitGroup
	for _, k := range keys {
		wg.Add(1)
		go func(k string) {
			defer wg.Done()
			_, err := setup.Store.Update(ctx, docstore.CollectionAttendance, doc.ID(), docstore.Document{k: true})
			assert.NoError(t, err)
		}(k)
	}
	wg.Wait()

	got, err := setup.Store.Get(ctx, docstore.CollectionAttendance, doc.ID())
	require.NoError(t, err)
	for _, k := range keys {
		assert.Equal(t, true, got[k], k)
	}
}
