package workflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"five-whys-api-server/config"
	"five-whys-api-server/internal/errs"
	"five-whys-api-server/internal/models"
	"five-whys-api-server/internal/repository"
	"five-whys-api-server/internal/store"
)

// fakeStore is an in-memory Store recording every write.
type fakeStore struct {
	collections map[string]map[string]map[string]string
	setCalls    int
	updateCalls int
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

func (f *fakeStore) put(collection, key string, fields map[string]string) {
	doc := make(map[string]string, len(fields))
	for k, v := range fields {
		doc[k] = v
	}
	f.coll(collection)[key] = doc
}

func (f *fakeStore) GetCollection(_ context.Context, name string) ([]store.Document, error) {
	var docs []store.Document
	for key, fields := range f.coll(name) {
		docs = append(docs, store.Document{Key: key, Fields: fields})
	}
	return docs, nil
}

func (f *fakeStore) SetDocument(_ context.Context, collection, key string, fields map[string]string, merge bool) error {
	f.setCalls++
	coll := f.coll(collection)
	if !merge {
		f.put(collection, key, fields)
		return nil
	}
	if coll[key] == nil {
		coll[key] = make(map[string]string)
	}
	for k, v := range fields {
		coll[key][k] = v
	}
	return nil
}

func (f *fakeStore) UpdateDocument(_ context.Context, collection, key string, fields map[string]string) error {
	f.updateCalls++
	coll := f.coll(collection)
	if coll[key] == nil {
		return errs.NotFoundf("document %s not found", key)
	}
	for k, v := range fields {
		coll[key][k] = v
	}
	return nil
}

func (f *fakeStore) InsertDocuments(_ context.Context, collection string, docs []store.Document) error {
	for _, d := range docs {
		f.put(collection, d.Key, d.Fields)
	}
	return nil
}

func (f *fakeStore) DeleteDocuments(_ context.Context, collection string, keys []string) error {
	for _, k := range keys {
		delete(f.coll(collection), k)
	}
	return nil
}

func testConfig() config.WorkflowConfig {
	return config.WorkflowConfig{
		ManagerCode:       "GestorAmbev",
		EmailDomain:       "@ambev.com.br",
		EscalationMinutes: 60,
		EscalationRecipients: []string{
			"oversight1@example.com",
			"oversight2@example.com",
		},
	}
}

func newEngine(st *fakeStore) *Engine {
	st.put(store.CollUsers, "Maria Souza", models.User{
		Name:    "Maria Souza",
		Email:   "maria.souza@ambev.com.br",
		Manager: "sim",
	}.Fields())

	return &Engine{
		Occurrences: &repository.OccurrenceRepo{Store: st},
		Users:       &repository.UserRepo{Store: st},
		Cfg:         testConfig(),
	}
}

func validOccurrence() models.Occurrence {
	return models.Occurrence{
		Date:             "2024-01-05",
		Shift:            "Turno A",
		Time:             "08:00",
		EventCategory:    "Mecânica",
		Line:             "L1",
		Equipment:        "Mixer 2",
		TriggerMinutes:   45,
		Anomaly:          "Parada da enchedora",
		ResponsibleEmail: "joao.silva@ambev.com.br",
		Manager:          "Maria Souza",
	}
}

func TestSubmitPersistsPendingAndNotifiesManager(t *testing.T) {
	st := newFakeStore()
	engine := newEngine(st)

	result, err := engine.Submit(context.Background(), validOccurrence())
	require.NoError(t, err)

	wantKey := "L1Mixer22024-01-0508:00"
	assert.Equal(t, wantKey, result.Occurrence.DocumentKey)
	assert.Equal(t, models.StatusPending, result.Occurrence.Status)

	stored := st.coll(store.CollOccurrences)[wantKey]
	require.NotNil(t, stored)
	assert.Equal(t, models.StatusPending, stored[models.FieldStatus])

	require.Len(t, result.Notifications, 1)
	n := result.Notifications[0]
	assert.Equal(t, NotifySubmitted, n.Kind)
	assert.Equal(t, []string{"maria.souza@ambev.com.br"}, n.Recipients)
}

func TestSubmitNormalizesEmptyFields(t *testing.T) {
	st := newFakeStore()
	engine := newEngine(st)

	occ := validOccurrence()
	occ.Anomaly = ""
	occ.FailureTypes = nil

	result, err := engine.Submit(context.Background(), occ)
	require.NoError(t, err)

	stored := st.coll(store.CollOccurrences)[result.Occurrence.DocumentKey]
	assert.Equal(t, models.NotInformed, stored[models.FieldAnomaly])
	assert.Equal(t, models.NotInformed, stored[models.FieldFailureTypes])
	// Non-empty fields pass through untouched.
	assert.Equal(t, "L1", stored[models.FieldLine])
}

func TestSubmitRejectsForeignEmailDomain(t *testing.T) {
	st := newFakeStore()
	engine := newEngine(st)

	occ := validOccurrence()
	occ.ResponsibleEmail = "joao@gmail.com"

	_, err := engine.Submit(context.Background(), occ)
	require.ErrorIs(t, err, errs.ErrValidation)

	// Nothing persisted, nothing to notify.
	assert.Empty(t, st.coll(store.CollOccurrences))
	assert.Zero(t, st.setCalls)
}

func TestSubmitRejectsUnknownManager(t *testing.T) {
	st := newFakeStore()
	engine := newEngine(st)

	occ := validOccurrence()
	occ.Manager = "Ninguém"

	_, err := engine.Submit(context.Background(), occ)
	require.ErrorIs(t, err, errs.ErrValidation)
	assert.Empty(t, st.coll(store.CollOccurrences))
}

func TestSubmitRejectsMissingKeyFields(t *testing.T) {
	st := newFakeStore()
	engine := newEngine(st)

	occ := validOccurrence()
	occ.Equipment = ""

	_, err := engine.Submit(context.Background(), occ)
	require.ErrorIs(t, err, errs.ErrValidation)
	assert.Empty(t, st.coll(store.CollOccurrences))
}

func submitted(t *testing.T, st *fakeStore, engine *Engine, mutate func(*models.Occurrence)) string {
	t.Helper()
	occ := validOccurrence()
	if mutate != nil {
		mutate(&occ)
	}
	result, err := engine.Submit(context.Background(), occ)
	require.NoError(t, err)
	return result.Occurrence.DocumentKey
}

func TestApproveRequiresManagerCode(t *testing.T) {
	st := newFakeStore()
	engine := newEngine(st)
	key := submitted(t, st, engine, nil)

	_, err := engine.Approve(context.Background(), key, "wrong-code", "ok")
	require.ErrorIs(t, err, errs.ErrAuthorization)

	stored := st.coll(store.CollOccurrences)[key]
	assert.Equal(t, models.StatusPending, stored[models.FieldStatus])
	assert.Zero(t, st.updateCalls)
}

func TestApproveTouchesOnlyStatus(t *testing.T) {
	st := newFakeStore()
	engine := newEngine(st)
	key := submitted(t, st, engine, nil)

	before := make(map[string]string)
	for k, v := range st.coll(store.CollOccurrences)[key] {
		before[k] = v
	}

	result, err := engine.Approve(context.Background(), key, "GestorAmbev", "bom trabalho")
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, result.Occurrence.Status)

	after := st.coll(store.CollOccurrences)[key]
	assert.Equal(t, models.StatusApproved, after[models.FieldStatus])
	for k, v := range before {
		if k == models.FieldStatus {
			continue
		}
		assert.Equal(t, v, after[k], "field %q must be unchanged", k)
	}

	require.Len(t, result.Notifications, 1)
	n := result.Notifications[0]
	assert.Equal(t, NotifyApproved, n.Kind)
	assert.Equal(t, []string{"joao.silva@ambev.com.br"}, n.Recipients)
	assert.Equal(t, "bom trabalho", n.Comment)
}

func TestApproveUnknownRecord(t *testing.T) {
	st := newFakeStore()
	engine := newEngine(st)

	_, err := engine.Approve(context.Background(), "no-such-key", "GestorAmbev", "")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestApproveAlreadyDecidedRecord(t *testing.T) {
	st := newFakeStore()
	engine := newEngine(st)
	key := submitted(t, st, engine, nil)

	_, err := engine.Approve(context.Background(), key, "GestorAmbev", "")
	require.NoError(t, err)

	_, err = engine.Approve(context.Background(), key, "GestorAmbev", "")
	require.ErrorIs(t, err, errs.ErrValidation)
}

func TestRejectFailureKindsAreDistinct(t *testing.T) {
	st := newFakeStore()
	engine := newEngine(st)
	key := submitted(t, st, engine, nil)

	// Wrong code fails authorization regardless of comment.
	_, err := engine.Reject(context.Background(), key, "wrong-code", "comentário presente")
	require.ErrorIs(t, err, errs.ErrAuthorization)
	assert.NotErrorIs(t, err, errs.ErrValidation)

	// Right code with an empty comment fails validation.
	_, err = engine.Reject(context.Background(), key, "GestorAmbev", "  ")
	require.ErrorIs(t, err, errs.ErrValidation)
	assert.NotErrorIs(t, err, errs.ErrAuthorization)

	stored := st.coll(store.CollOccurrences)[key]
	assert.Equal(t, models.StatusPending, stored[models.FieldStatus])
}

func TestRejectPersistsAndNotifies(t *testing.T) {
	st := newFakeStore()
	engine := newEngine(st)
	key := submitted(t, st, engine, nil)

	result, err := engine.Reject(context.Background(), key, "GestorAmbev", "faltou o pq3")
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, result.Occurrence.Status)

	stored := st.coll(store.CollOccurrences)[key]
	assert.Equal(t, models.StatusRejected, stored[models.FieldStatus])

	require.Len(t, result.Notifications, 1)
	n := result.Notifications[0]
	assert.Equal(t, NotifyRejected, n.Kind)
	assert.Equal(t, "faltou o pq3", n.Comment)
}

func TestEscalationIsStrictlyGreaterThanThreshold(t *testing.T) {
	cases := []struct {
		name           string
		triggerMinutes int
		wantEscalation bool
	}{
		{"at threshold", 60, false},
		{"above threshold", 61, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st := newFakeStore()
			engine := newEngine(st)
			key := submitted(t, st, engine, func(o *models.Occurrence) {
				o.TriggerMinutes = tc.triggerMinutes
			})

			result, err := engine.Approve(context.Background(), key, "GestorAmbev", "")
			require.NoError(t, err)

			recipients := result.Notifications[0].Recipients
			if tc.wantEscalation {
				assert.Equal(t, []string{
					"joao.silva@ambev.com.br",
					"oversight1@example.com",
					"oversight2@example.com",
				}, recipients)
			} else {
				assert.Equal(t, []string{"joao.silva@ambev.com.br"}, recipients)
			}
		})
	}
}

func TestRectifyMergesEditsAndKeepsStoredFields(t *testing.T) {
	st := newFakeStore()
	engine := newEngine(st)
	key := submitted(t, st, engine, func(o *models.Occurrence) {
		o.Whys = [5]string{"correia partiu", "desgaste", "sem inspeção", "plano incompleto", "rota nova"}
	})
	_, err := engine.Reject(context.Background(), key, "GestorAmbev", "refazer pq5")
	require.NoError(t, err)

	result, err := engine.Rectify(context.Background(), key, map[string]string{
		models.FieldWhy5: "rota de inspeção não contemplava o equipamento",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusRectified, result.Occurrence.Status)

	stored := st.coll(store.CollOccurrences)[key]
	assert.Equal(t, "rota de inspeção não contemplava o equipamento", stored[models.FieldWhy5])
	// Untouched fields keep their previously stored values.
	assert.Equal(t, "correia partiu", stored[models.FieldWhy1])
	assert.Equal(t, "Parada da enchedora", stored[models.FieldAnomaly])
	assert.Equal(t, models.StatusRectified, stored[models.FieldStatus])

	require.Len(t, result.Notifications, 1)
	n := result.Notifications[0]
	assert.Equal(t, NotifyRectified, n.Kind)
	assert.Equal(t, []string{"maria.souza@ambev.com.br"}, n.Recipients)
}

func TestRectifyValidatesEmailLikeSubmit(t *testing.T) {
	st := newFakeStore()
	engine := newEngine(st)
	key := submitted(t, st, engine, nil)
	_, err := engine.Reject(context.Background(), key, "GestorAmbev", "refazer")
	require.NoError(t, err)

	_, err = engine.Rectify(context.Background(), key, map[string]string{
		models.FieldResponsibleEmail: "joao@hotmail.com",
	})
	require.ErrorIs(t, err, errs.ErrValidation)

	stored := st.coll(store.CollOccurrences)[key]
	assert.Equal(t, models.StatusRejected, stored[models.FieldStatus])
}

func TestRectifyRequiresRejectedStatus(t *testing.T) {
	st := newFakeStore()
	engine := newEngine(st)
	key := submitted(t, st, engine, nil)

	_, err := engine.Rectify(context.Background(), key, map[string]string{
		models.FieldWhy1: "edit",
	})
	require.ErrorIs(t, err, errs.ErrValidation)
}

func TestRectifiedRecordReentersEvaluation(t *testing.T) {
	st := newFakeStore()
	engine := newEngine(st)
	key := submitted(t, st, engine, nil)

	_, err := engine.Reject(context.Background(), key, "GestorAmbev", "refazer")
	require.NoError(t, err)
	_, err = engine.Rectify(context.Background(), key, map[string]string{models.FieldWhy1: "nova causa"})
	require.NoError(t, err)

	// The rectified record can be approved again.
	result, err := engine.Approve(context.Background(), key, "GestorAmbev", "agora sim")
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, result.Occurrence.Status)
}
