package repository

import (
	"context"
	"sort"
	"time"

	"five-whys-api-server/internal/models"
	"five-whys-api-server/internal/store"
)

// PendencyRepo reads and creates flagged potential issues.
type PendencyRepo struct {
	Store store.Store
}

// List returns pendencies sorted by date, newest last, optionally limited
// to the trailing n entries (the dashboard shows the latest handful).
func (r *PendencyRepo) List(ctx context.Context, tail int) ([]models.Pendency, error) {
	docs, err := r.Store.GetCollection(ctx, store.CollPendencies)
	if err != nil {
		return nil, err
	}
	pendencies := make([]models.Pendency, 0, len(docs))
	for _, doc := range docs {
		pendencies = append(pendencies, models.PendencyFromFields(doc.Key, doc.Fields))
	}
	sort.Slice(pendencies, func(i, j int) bool {
		if pendencies[i].Date != pendencies[j].Date {
			return pendencies[i].Date < pendencies[j].Date
		}
		return pendencies[i].DocumentKey < pendencies[j].DocumentKey
	})
	if tail > 0 && len(pendencies) > tail {
		pendencies = pendencies[len(pendencies)-tail:]
	}
	return pendencies, nil
}

// Create normalizes and stores a pendency under a timestamp-based key.
// Pendencies are born Pendente and never transition.
func (r *PendencyRepo) Create(ctx context.Context, p models.Pendency, now time.Time) (string, error) {
	p.Status = models.StatusPending
	fields := Normalize(p.Fields())
	key := DerivePendencyKey(fields[models.FieldLine], fields[models.FieldEquipment], now)
	if err := r.Store.SetDocument(ctx, store.CollPendencies, key, fields, false); err != nil {
		return "", err
	}
	return key, nil
}
