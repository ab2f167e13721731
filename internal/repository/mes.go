package repository

import (
	"context"

	"five-whys-api-server/internal/errs"
	"five-whys-api-server/internal/models"
	"five-whys-api-server/internal/store"
)

// MesRepo reads imported downtime events and provides the existing-key set
// the import deduplicates against.
type MesRepo struct {
	Store store.Store
}

func (r *MesRepo) List(ctx context.Context) ([]models.MesEvent, error) {
	docs, err := r.Store.GetCollection(ctx, store.CollMesEvents)
	if err != nil {
		return nil, err
	}
	events := make([]models.MesEvent, 0, len(docs))
	for _, doc := range docs {
		events = append(events, models.MesEventFromFields(doc.Key, doc.Fields))
	}
	return events, nil
}

// ExistingKeys loads every stored event key.
func (r *MesRepo) ExistingKeys(ctx context.Context) (map[string]struct{}, error) {
	docs, err := r.Store.GetCollection(ctx, store.CollMesEvents)
	if err != nil {
		return nil, err
	}
	keys := make(map[string]struct{}, len(docs))
	for _, doc := range docs {
		keys[doc.Key] = struct{}{}
	}
	return keys, nil
}

// InsertBatch writes new events in one batch, all-or-nothing: an ordered
// insert that fails mid-batch leaves earlier documents written, so those
// are rolled back before the failure is reported.
func (r *MesRepo) InsertBatch(ctx context.Context, events []models.MesEvent) error {
	docs := make([]store.Document, 0, len(events))
	keys := make([]string, 0, len(events))
	for _, e := range events {
		docs = append(docs, store.Document{Key: e.DocumentKey, Fields: e.Fields()})
		keys = append(keys, e.DocumentKey)
	}

	if err := r.Store.InsertDocuments(ctx, store.CollMesEvents, docs); err != nil {
		if cleanupErr := r.Store.DeleteDocuments(ctx, store.CollMesEvents, keys); cleanupErr != nil {
			return errs.Wrap(err, "batch insert failed and rollback incomplete")
		}
		return err
	}
	return nil
}
