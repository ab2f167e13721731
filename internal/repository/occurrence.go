package repository

import (
	"context"

	"five-whys-api-server/internal/errs"
	"five-whys-api-server/internal/models"
	"five-whys-api-server/internal/store"
)

// OccurrenceFilter narrows listings the way the review page does. Zero
// values mean "no constraint"; dates compare lexically, which works because
// the stored format is YYYY-MM-DD.
type OccurrenceFilter struct {
	DateFrom    string
	DateTo      string
	Responsible string
	Manager     string
	Status      string
}

func (f OccurrenceFilter) matches(o models.Occurrence) bool {
	if f.DateFrom != "" && o.Date < f.DateFrom {
		return false
	}
	if f.DateTo != "" && o.Date > f.DateTo {
		return false
	}
	if f.Responsible != "" && o.ResponsibleID != f.Responsible {
		return false
	}
	if f.Manager != "" && o.Manager != f.Manager {
		return false
	}
	if f.Status != "" && o.Status != f.Status {
		return false
	}
	return true
}

// OccurrenceRepo reads and writes 5-Why records.
type OccurrenceRepo struct {
	Store store.Store
}

func (r *OccurrenceRepo) List(ctx context.Context, filter OccurrenceFilter) ([]models.Occurrence, error) {
	docs, err := r.Store.GetCollection(ctx, store.CollOccurrences)
	if err != nil {
		return nil, err
	}
	occurrences := make([]models.Occurrence, 0, len(docs))
	for _, doc := range docs {
		o := models.OccurrenceFromFields(doc.Key, doc.Fields)
		if filter.matches(o) {
			occurrences = append(occurrences, o)
		}
	}
	return occurrences, nil
}

func (r *OccurrenceRepo) Get(ctx context.Context, key string) (models.Occurrence, error) {
	docs, err := r.Store.GetCollection(ctx, store.CollOccurrences)
	if err != nil {
		return models.Occurrence{}, err
	}
	for _, doc := range docs {
		if doc.Key == key {
			return models.OccurrenceFromFields(doc.Key, doc.Fields), nil
		}
	}
	return models.Occurrence{}, errs.NotFoundf("occurrence %s not found", key)
}

// Create stores a full normalized record under its derived key. An existing
// document under the same key is overwritten (see DeriveDocumentKey on
// collisions).
func (r *OccurrenceRepo) Create(ctx context.Context, key string, fields map[string]string) error {
	return r.Store.SetDocument(ctx, store.CollOccurrences, key, fields, false)
}

// Merge writes only the given fields into an existing record, keeping the
// rest of the stored document.
func (r *OccurrenceRepo) Merge(ctx context.Context, key string, fields map[string]string) error {
	return r.Store.SetDocument(ctx, store.CollOccurrences, key, fields, true)
}

// UpdateStatus patches exactly the status field.
func (r *OccurrenceRepo) UpdateStatus(ctx context.Context, key, status string) error {
	return r.Store.UpdateDocument(ctx, store.CollOccurrences, key, map[string]string{
		models.FieldStatus: status,
	})
}
