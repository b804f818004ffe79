package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "scrapemyuni.backend/internal/domain/errors"
	"scrapemyuni.backend/internal/domain/repositories"
)

func seedUniversities(t *testing.T, store *GormDocumentStore) (alpha, beta, gamma string) {
	t.Helper()
	alpha = mustAdd(t, store, repositories.CollectionUniversities, map[string]interface{}{
		"name": "Alpha", "type": "public", "ranking": 2, "isActive": true,
		"location": map[string]interface{}{"province": "Sindh"},
	})
	beta = mustAdd(t, store, repositories.CollectionUniversities, map[string]interface{}{
		"name": "Beta", "type": "private", "ranking": 1, "isActive": false,
		"location": map[string]interface{}{"province": "Punjab"},
	})
	gamma = mustAdd(t, store, repositories.CollectionUniversities, map[string]interface{}{
		"name": "Gamma", "type": "public", "isActive": true,
		"location": map[string]interface{}{"province": "Punjab"},
	})
	return alpha, beta, gamma
}

func TestGormDocumentStore_AddGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id := mustAdd(t, store, repositories.CollectionUniversities, map[string]interface{}{
		"id":       "ignored",
		"name":     "Alpha",
		"location": map[string]interface{}{"province": "Sindh"},
	})
	require.NotEmpty(t, id)
	assert.NotEqual(t, "ignored", id)

	doc, err := store.Get(ctx, repositories.CollectionUniversities, id)
	require.NoError(t, err)
	assert.Equal(t, id, doc.ID)
	assert.Equal(t, "Alpha", doc.Fields["name"])
	assert.NotContains(t, doc.Fields, "id")
	assert.Equal(t, "Sindh", doc.Fields["location"].(map[string]interface{})["province"])

	// same id in another collection is a different document
	_, err = store.Get(ctx, repositories.CollectionPrograms, id)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestGormDocumentStore_GetNotFound(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Get(context.Background(), repositories.CollectionUniversities, "missing")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestGormDocumentStore_FindFiltersAndOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	alpha, beta, gamma := seedUniversities(t, store)

	all, err := store.Find(ctx, repositories.CollectionUniversities, repositories.Query{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	// uuid v7 identifiers sort in insertion order
	assert.Equal(t, []string{alpha, beta, gamma}, []string{all[0].ID, all[1].ID, all[2].ID})

	punjab, err := store.Find(ctx, repositories.CollectionUniversities,
		repositories.Query{}.Where("location.province", "Punjab"))
	require.NoError(t, err)
	assert.Len(t, punjab, 2)

	publicPunjab, err := store.Find(ctx, repositories.CollectionUniversities,
		repositories.Query{}.Where("location.province", "Punjab").Where("type", "public"))
	require.NoError(t, err)
	require.Len(t, publicPunjab, 1)
	assert.Equal(t, gamma, publicPunjab[0].ID)

	active, err := store.Find(ctx, repositories.CollectionUniversities,
		repositories.Query{}.Where("isActive", true))
	require.NoError(t, err)
	assert.Len(t, active, 2)

	ranked, err := store.Find(ctx, repositories.CollectionUniversities, repositories.Query{
		OrderBy: &repositories.OrderBy{Field: "ranking"},
	})
	require.NoError(t, err)
	// Gamma has no ranking and is left out
	require.Len(t, ranked, 2)
	assert.Equal(t, beta, ranked[0].ID)
	assert.Equal(t, alpha, ranked[1].ID)

	top, err := store.Find(ctx, repositories.CollectionUniversities, repositories.Query{
		OrderBy: &repositories.OrderBy{Field: "ranking", Descending: true},
		Limit:   1,
	})
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, alpha, top[0].ID)

	page2, err := store.Find(ctx, repositories.CollectionUniversities, repositories.Query{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, page2, 1)
	assert.Equal(t, gamma, page2[0].ID)

	none, err := store.Find(ctx, repositories.CollectionUniversities,
		repositories.Query{}.Where("location.province", "Balochistan"))
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGormDocumentStore_FindRejectsBadPaths(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Find(ctx, repositories.CollectionUniversities,
		repositories.Query{}.Where("name'); DROP TABLE documents; --", "x"))
	assert.Error(t, err)

	_, err = store.Find(ctx, repositories.CollectionUniversities, repositories.Query{
		OrderBy: &repositories.OrderBy{Field: "ranking desc"},
	})
	assert.Error(t, err)
}

func TestGormDocumentStore_SetIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	fields := map[string]interface{}{"email": "template@example.com", "name": "Template"}

	require.NoError(t, store.Set(ctx, repositories.CollectionUsers, "template", fields))
	require.NoError(t, store.Set(ctx, repositories.CollectionUsers, "template", fields))

	docs, err := store.Find(ctx, repositories.CollectionUsers, repositories.Query{})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "template", docs[0].ID)
	assert.Equal(t, "Template", docs[0].Fields["name"])

	require.NoError(t, store.Set(ctx, repositories.CollectionUsers, "template", map[string]interface{}{"name": "Replaced"}))
	doc, err := store.Get(ctx, repositories.CollectionUsers, "template")
	require.NoError(t, err)
	assert.Equal(t, "Replaced", doc.Fields["name"])
	assert.NotContains(t, doc.Fields, "email")
}

func TestGormDocumentStore_UpdateMerges(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	alpha, _, _ := seedUniversities(t, store)

	require.NoError(t, store.Update(ctx, repositories.CollectionUniversities, alpha, map[string]interface{}{
		"ranking":                         5,
		"location.city":                   "Karachi",
		"contactInfo.socialMedia.twitter": "@alpha",
	}))

	doc, err := store.Get(ctx, repositories.CollectionUniversities, alpha)
	require.NoError(t, err)
	assert.Equal(t, "Alpha", doc.Fields["name"])
	assert.Equal(t, float64(5), doc.Fields["ranking"])
	location := doc.Fields["location"].(map[string]interface{})
	assert.Equal(t, "Sindh", location["province"])
	assert.Equal(t, "Karachi", location["city"])
	social := doc.Fields["contactInfo"].(map[string]interface{})["socialMedia"].(map[string]interface{})
	assert.Equal(t, "@alpha", social["twitter"])
}

func TestGormDocumentStore_UpdateMissing(t *testing.T) {
	store := newTestStore(t)
	err := store.Update(context.Background(), repositories.CollectionUniversities, "missing", map[string]interface{}{"name": "x"})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	err = store.Update(context.Background(), repositories.CollectionUniversities, "missing", map[string]interface{}{"bad key": "x"})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestGormDocumentStore_DeleteAndPing(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	alpha, _, _ := seedUniversities(t, store)

	require.NoError(t, store.Delete(ctx, repositories.CollectionUniversities, alpha))
	_, err := store.Get(ctx, repositories.CollectionUniversities, alpha)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	// no existence check
	require.NoError(t, store.Delete(ctx, repositories.CollectionUniversities, alpha))
	require.NoError(t, store.Ping(ctx))
}

func TestGormDocumentStore_ClosedDatabase(t *testing.T) {
	store := newTestStore(t)
	sqlDB, err := store.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	ctx := context.Background()
	_, err = store.Get(ctx, repositories.CollectionUniversities, "x")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domainerrors.ErrNotFound)
	_, err = store.Find(ctx, repositories.CollectionUniversities, repositories.Query{})
	assert.Error(t, err)
	_, err = store.Add(ctx, repositories.CollectionUniversities, map[string]interface{}{"name": "x"})
	assert.Error(t, err)
	assert.Error(t, store.Ping(ctx))
}
