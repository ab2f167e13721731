package database

import (
	"context"
	"log/slog"

	"five-whys-api-server/internal/models"
	"five-whys-api-server/internal/store"
)

// SeedReferenceData populates the user directory and line/equipment
// catalog on first boot. Idempotent: non-empty collections are left alone,
// so production directories imported from the plant are never touched.
func SeedReferenceData(ctx context.Context, st store.Store) error {
	if err := seedUsers(ctx, st); err != nil {
		return err
	}
	return seedCatalog(ctx, st)
}

func seedUsers(ctx context.Context, st store.Store) error {
	docs, err := st.GetCollection(ctx, store.CollUsers)
	if err != nil {
		return err
	}
	if len(docs) > 0 {
		slog.Info("user directory already populated, seeding skipped", "users", len(docs))
		return nil
	}

	slog.Info("user directory empty, seeding default manager")
	manager := models.User{
		Name:    "Gestor Padrão",
		Email:   "gestor@ambev.com.br",
		Manager: "sim",
		Code:    "G-0001",
	}
	return st.SetDocument(ctx, store.CollUsers, manager.Name, manager.Fields(), false)
}

func seedCatalog(ctx context.Context, st store.Store) error {
	docs, err := st.GetCollection(ctx, store.CollCatalog)
	if err != nil {
		return err
	}
	if len(docs) > 0 {
		return nil
	}

	slog.Info("catalog empty, seeding default line/equipment pairs")
	entries := []models.CatalogEntry{
		{Line: "L1", Equipment: "Enchedora"},
		{Line: "L1", Equipment: "Rotuladora"},
		{Line: "L1", Equipment: "Paletizadora"},
		{Line: "L2", Equipment: "Enchedora"},
		{Line: "L2", Equipment: "Pasteurizador"},
	}
	seed := make([]store.Document, 0, len(entries))
	for _, e := range entries {
		seed = append(seed, store.Document{
			Key:    e.Line + e.Equipment,
			Fields: e.Fields(),
		})
	}
	return st.InsertDocuments(ctx, store.CollCatalog, seed)
}
