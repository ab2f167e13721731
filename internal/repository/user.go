package repository

import (
	"context"

	"five-whys-api-server/internal/errs"
	"five-whys-api-server/internal/models"
	"five-whys-api-server/internal/store"
)

// UserRepo reads the user/manager directory. Reference data only; nothing
// in this core mutates it.
type UserRepo struct {
	Store store.Store
}

func (r *UserRepo) List(ctx context.Context) ([]models.User, error) {
	docs, err := r.Store.GetCollection(ctx, store.CollUsers)
	if err != nil {
		return nil, err
	}
	users := make([]models.User, 0, len(docs))
	for _, doc := range docs {
		users = append(users, models.UserFromFields(doc.Key, doc.Fields))
	}
	return users, nil
}

// Managers returns the directory entries flagged as managers; occurrence
// forms pick their coordinator from this list.
func (r *UserRepo) Managers(ctx context.Context) ([]models.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	managers := users[:0]
	for _, u := range users {
		if u.IsManager() {
			managers = append(managers, u)
		}
	}
	return managers, nil
}

// FindByName resolves a directory entry, e.g. the manager a record names.
func (r *UserRepo) FindByName(ctx context.Context, name string) (models.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return models.User{}, err
	}
	for _, u := range users {
		if u.Name == name {
			return u, nil
		}
	}
	return models.User{}, errs.NotFoundf("user %q not found in directory", name)
}
