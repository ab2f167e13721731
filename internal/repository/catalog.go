package repository

import (
	"context"

	"five-whys-api-server/internal/models"
	"five-whys-api-server/internal/store"
)

// CatalogRepo reads the line/equipment catalog. Reference data only.
type CatalogRepo struct {
	Store store.Store
}

func (r *CatalogRepo) List(ctx context.Context) ([]models.CatalogEntry, error) {
	docs, err := r.Store.GetCollection(ctx, store.CollCatalog)
	if err != nil {
		return nil, err
	}
	entries := make([]models.CatalogEntry, 0, len(docs))
	for _, doc := range docs {
		entries = append(entries, models.CatalogEntryFromFields(doc.Fields))
	}
	return entries, nil
}

// Lines returns the distinct production lines, in catalog order.
func (r *CatalogRepo) Lines(ctx context.Context) ([]string, error) {
	entries, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(entries))
	var lines []string
	for _, e := range entries {
		if _, ok := seen[e.Line]; !ok {
			seen[e.Line] = struct{}{}
			lines = append(lines, e.Line)
		}
	}
	return lines, nil
}

// EquipmentForLine returns the equipment installed on one line.
func (r *CatalogRepo) EquipmentForLine(ctx context.Context, line string) ([]string, error) {
	entries, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	var equipment []string
	for _, e := range entries {
		if e.Line == line {
			equipment = append(equipment, e.Equipment)
		}
	}
	return equipment, nil
}
