package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"five-whys-api-server/internal/errs"
	"five-whys-api-server/internal/models"
	"five-whys-api-server/internal/store"
)

type fakeStore struct {
	collections map[string]map[string]map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{collections: make(map[string]map[string]map[string]string)}
}

func (f *fakeStore) coll(name string) map[string]map[string]string {
	if f.collections[name] == nil {
		f.collections[name] = make(map[string]map[string]string)
	}
	return f.collections[name]
}

func (f *fakeStore) GetCollection(_ context.Context, name string) ([]store.Document, error) {
	var docs []store.Document
	for key, fields := range f.coll(name) {
		docs = append(docs, store.Document{Key: key, Fields: fields})
	}
	return docs, nil
}

func (f *fakeStore) SetDocument(_ context.Context, collection, key string, fields map[string]string, _ bool) error {
	f.coll(collection)[key] = fields
	return nil
}

func (f *fakeStore) UpdateDocument(_ context.Context, collection, key string, fields map[string]string) error {
	if f.coll(collection)[key] == nil {
		return errs.NotFoundf("document %s not found", key)
	}
	for k, v := range fields {
		f.coll(collection)[key][k] = v
	}
	return nil
}

func (f *fakeStore) InsertDocuments(_ context.Context, collection string, docs []store.Document) error {
	for _, d := range docs {
		f.coll(collection)[d.Key] = d.Fields
	}
	return nil
}

func (f *fakeStore) DeleteDocuments(_ context.Context, collection string, keys []string) error {
	for _, k := range keys {
		delete(f.coll(collection), k)
	}
	return nil
}

func TestPendencyCreate(t *testing.T) {
	st := newFakeStore()
	repo := &PendencyRepo{Store: st}
	now := time.Unix(1700000000, 0)

	key, err := repo.Create(context.Background(), models.Pendency{
		Date:      "2024-01-05",
		Shift:     "Turno A",
		Line:      "L1",
		Equipment: "Mixer 2",
		User:      "João",
	}, now)
	require.NoError(t, err)
	assert.Equal(t, "L1-Mixer2-1700000000", key)

	stored := st.coll(store.CollPendencies)[key]
	require.NotNil(t, stored)
	assert.Equal(t, models.StatusPending, stored[models.FieldStatus])
	// Unfilled fields get the sentinel.
	assert.Equal(t, models.NotInformed, stored[models.FieldPendencyDescription])
}

func TestPendencyListTail(t *testing.T) {
	st := newFakeStore()
	repo := &PendencyRepo{Store: st}

	for _, p := range []models.Pendency{
		{Date: "2024-01-01", Line: "L1", Equipment: "A"},
		{Date: "2024-01-03", Line: "L1", Equipment: "B"},
		{Date: "2024-01-02", Line: "L2", Equipment: "C"},
	} {
		st.coll(store.CollPendencies)[p.Line+p.Equipment] = p.Fields()
	}

	pendencies, err := repo.List(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, pendencies, 2)
	// Newest last; the oldest entry fell off the tail.
	assert.Equal(t, "2024-01-02", pendencies[0].Date)
	assert.Equal(t, "2024-01-03", pendencies[1].Date)
}

func TestUserRepoManagers(t *testing.T) {
	st := newFakeStore()
	repo := &UserRepo{Store: st}

	for _, u := range []models.User{
		{Name: "Maria", Email: "maria@ambev.com.br", Manager: "sim"},
		{Name: "João", Email: "joao@ambev.com.br", Manager: "não"},
		{Name: "Ana", Email: "ana@ambev.com.br", Manager: "Sim"},
	} {
		st.coll(store.CollUsers)[u.Name] = u.Fields()
	}

	managers, err := repo.Managers(context.Background())
	require.NoError(t, err)
	require.Len(t, managers, 2)
	for _, m := range managers {
		assert.True(t, m.IsManager())
	}

	_, err = repo.FindByName(context.Background(), "Maria")
	require.NoError(t, err)
	_, err = repo.FindByName(context.Background(), "Pedro")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestCatalogRepoLines(t *testing.T) {
	st := newFakeStore()
	repo := &CatalogRepo{Store: st}

	for _, e := range []models.CatalogEntry{
		{Line: "L1", Equipment: "Enchedora"},
		{Line: "L1", Equipment: "Rotuladora"},
		{Line: "L2", Equipment: "Pasteurizador"},
	} {
		st.coll(store.CollCatalog)[e.Line+e.Equipment] = e.Fields()
	}

	lines, err := repo.Lines(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"L1", "L2"}, lines)

	equipment, err := repo.EquipmentForLine(context.Background(), "L1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Enchedora", "Rotuladora"}, equipment)
}
