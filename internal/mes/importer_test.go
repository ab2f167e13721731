package mes

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"five-whys-api-server/config"
	"five-whys-api-server/internal/errs"
	"five-whys-api-server/internal/models"
	"five-whys-api-server/internal/repository"
	"five-whys-api-server/internal/store"
)

// fakeStore is a minimal in-memory Store for the importer: collection
// reads plus batch inserts. With insertErr set, insertBeforeFail documents
// are written before the batch reports failure, mimicking an ordered
// insert aborting mid-batch.
type fakeStore struct {
	collections      map[string]map[string]map[string]string
	insertedDocs     int
	insertErr        error
	insertBeforeFail int
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

func (f *fakeStore) UpdateDocument(_ context.Context, _, key string, _ map[string]string) error {
	return errs.NotFoundf("document %s not found", key)
}

func (f *fakeStore) InsertDocuments(_ context.Context, collection string, docs []store.Document) error {
	if f.insertErr != nil {
		for i, d := range docs {
			if i >= f.insertBeforeFail {
				break
			}
			f.coll(collection)[d.Key] = d.Fields
			f.insertedDocs++
		}
		return f.insertErr
	}
	for _, d := range docs {
		f.coll(collection)[d.Key] = d.Fields
		f.insertedDocs++
	}
	return nil
}

func (f *fakeStore) DeleteDocuments(_ context.Context, collection string, keys []string) error {
	for _, k := range keys {
		delete(f.coll(collection), k)
	}
	return nil
}

var header = []interface{}{"Linha", "Equipamento", "Data", "Hora", "Tempo", "Definição do Evento"}

func workbook(t *testing.T, sheet string, rows ...[]interface{}) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	_, err := f.NewSheet(sheet)
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return bytes.NewReader(buf.Bytes())
}

func newImporter(st *fakeStore) *Importer {
	return &Importer{
		Repo: &repository.MesRepo{Store: st},
		Cfg:  config.MESConfig{SheetName: "Parada", MinDurationMinutes: 30},
	}
}

var allowed = []string{"Mecânica", "Elétrico"}

func TestImportFilterRules(t *testing.T) {
	st := newFakeStore()
	importer := newImporter(st)

	wb := workbook(t, "Parada",
		// Duration exactly at the threshold: excluded, strict >30.
		[]interface{}{"L1", "EqA", "2024-01-01", "08:00", "30", "Mecânica"},
		// Above threshold but category not allowed: excluded.
		[]interface{}{"L1", "EqA", "2024-01-01", "09:00", "31", "Qualidade"},
		// Above threshold with allowed category: included.
		[]interface{}{"L1", "EqB", "2024-01-01", "09:00", "31", "Mecânica"},
	)

	result, err := importer.Import(context.Background(), wb, allowed)
	require.NoError(t, err)

	require.Len(t, result.Accepted, 1)
	assert.Equal(t, "L1EqB2024-01-0109:00", result.Accepted[0].DocumentKey)
	assert.Equal(t, 2, result.FilteredOut)
	assert.Zero(t, result.Duplicates)
	assert.Equal(t, 1, st.insertedDocs)
}

func TestImportSkipsExistingKeys(t *testing.T) {
	st := newFakeStore()
	st.coll(store.CollMesEvents)["L1EqA2024-01-0108:00"] = map[string]string{}
	importer := newImporter(st)

	wb := workbook(t, "Parada",
		[]interface{}{"L1", "EqA", "2024-01-01", "08:00", "45", "Mecânica"},
		[]interface{}{"L1", "EqB", "2024-01-01", "09:00", "45", "Mecânica"},
	)

	result, err := importer.Import(context.Background(), wb, allowed)
	require.NoError(t, err)

	// Only the new row is written; the duplicate is silently skipped and
	// surfaced as a count only.
	require.Len(t, result.Accepted, 1)
	assert.Equal(t, "L1EqB2024-01-0109:00", result.Accepted[0].DocumentKey)
	assert.Equal(t, 1, result.Duplicates)
	assert.Equal(t, 1, st.insertedDocs)
}

func TestImportDeduplicatesWithinFile(t *testing.T) {
	st := newFakeStore()
	importer := newImporter(st)

	wb := workbook(t, "Parada",
		[]interface{}{"L1", "EqA", "2024-01-01", "08:00", "45", "Mecânica"},
		[]interface{}{"L1", "EqA", "2024-01-01", "08:00", "50", "Mecânica"},
	)

	result, err := importer.Import(context.Background(), wb, allowed)
	require.NoError(t, err)

	// Last row wins for a repeated in-file key, same as the store would
	// resolve it.
	require.Len(t, result.Accepted, 1)
	assert.Equal(t, float64(50), result.Accepted[0].DurationMinutes)
}

func TestImportKeyDerivationStripsEquipmentSpaces(t *testing.T) {
	st := newFakeStore()
	importer := newImporter(st)

	wb := workbook(t, "Parada",
		[]interface{}{"L1", "Mixer 2", "2024-01-05", "08:00", "45", "Mecânica"},
	)

	result, err := importer.Import(context.Background(), wb, allowed)
	require.NoError(t, err)
	require.Len(t, result.Accepted, 1)
	assert.Equal(t, "L1Mixer22024-01-0508:00", result.Accepted[0].DocumentKey)
}

func TestImportBatchFailureFailsWholeImport(t *testing.T) {
	st := newFakeStore()
	st.insertErr = errs.Store(assert.AnError, "insert failed")
	importer := newImporter(st)

	wb := workbook(t, "Parada",
		[]interface{}{"L1", "EqA", "2024-01-01", "08:00", "45", "Mecânica"},
	)

	_, err := importer.Import(context.Background(), wb, allowed)
	require.ErrorIs(t, err, errs.ErrStore)
	assert.Zero(t, st.insertedDocs)
}

func TestImportMidBatchFailureLeavesNoPartialWrite(t *testing.T) {
	st := newFakeStore()
	st.insertErr = errs.Store(assert.AnError, "insert failed")
	st.insertBeforeFail = 1
	importer := newImporter(st)

	wb := workbook(t, "Parada",
		[]interface{}{"L1", "EqA", "2024-01-01", "08:00", "45", "Mecânica"},
		[]interface{}{"L1", "EqB", "2024-01-01", "09:00", "45", "Mecânica"},
	)

	_, err := importer.Import(context.Background(), wb, allowed)
	require.ErrorIs(t, err, errs.ErrStore)

	// The first document landed before the batch aborted; the rollback
	// must have removed it again.
	assert.Empty(t, st.coll(store.CollMesEvents))
}

func TestImportRejectsMissingSheet(t *testing.T) {
	st := newFakeStore()
	importer := newImporter(st)

	wb := workbook(t, "OutraPlanilha",
		[]interface{}{"L1", "EqA", "2024-01-01", "08:00", "45", "Mecânica"},
	)

	_, err := importer.Import(context.Background(), wb, allowed)
	require.ErrorIs(t, err, errs.ErrValidation)
}

func TestImportRejectsMissingColumn(t *testing.T) {
	st := newFakeStore()
	importer := newImporter(st)

	f := excelize.NewFile()
	defer f.Close()
	_, err := f.NewSheet("Parada")
	require.NoError(t, err)
	incomplete := []interface{}{"Linha", "Equipamento", "Data", "Hora"} // no Tempo, no category
	require.NoError(t, f.SetSheetRow("Parada", "A1", &incomplete))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	_, err = importer.Import(context.Background(), bytes.NewReader(buf.Bytes()), allowed)
	require.ErrorIs(t, err, errs.ErrValidation)
}

func TestImportCommaDecimalDuration(t *testing.T) {
	st := newFakeStore()
	importer := newImporter(st)

	wb := workbook(t, "Parada",
		[]interface{}{"L1", "EqA", "2024-01-01", "08:00", "45,5", "Mecânica"},
	)

	result, err := importer.Import(context.Background(), wb, allowed)
	require.NoError(t, err)
	require.Len(t, result.Accepted, 1)
	assert.Equal(t, 45.5, result.Accepted[0].DurationMinutes)
}

func TestImportPassthroughFields(t *testing.T) {
	st := newFakeStore()
	importer := newImporter(st)

	f := excelize.NewFile()
	defer f.Close()
	_, err := f.NewSheet("Parada")
	require.NoError(t, err)
	fullHeader := []interface{}{"Linha", "Equipamento", "Data", "Hora", "Tempo", "Definição do Evento", "Turno", "Lote"}
	require.NoError(t, f.SetSheetRow("Parada", "A1", &fullHeader))
	row := []interface{}{"L1", "EqA", "2024-01-01", "08:00", "45", "Mecânica", "Morning", "L-778"}
	require.NoError(t, f.SetSheetRow("Parada", "A2", &row))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	result, err := importer.Import(context.Background(), bytes.NewReader(buf.Bytes()), allowed)
	require.NoError(t, err)
	require.Len(t, result.Accepted, 1)

	event := result.Accepted[0]
	assert.Equal(t, "L-778", event.Lot)
	// Stored as the feed delivers it; localization happens on read.
	stored := st.coll(store.CollMesEvents)[event.DocumentKey]
	assert.Equal(t, "Morning", stored[models.MesFieldShift])

	events, err := (&repository.MesRepo{Store: st}).List(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Turno A", events[0].Shift)
}
