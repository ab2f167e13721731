// Package mes ingests the manufacturing-execution-system downtime export
// into the document store, filtering by business rule and deduplicating
// against already-imported events.
package mes

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"five-whys-api-server/config"
	"five-whys-api-server/internal/errs"
	"five-whys-api-server/internal/models"
	"five-whys-api-server/internal/repository"
)

// Columns the importer cannot work without. Everything else in the sheet
// is passed through opportunistically.
var requiredColumns = []string{
	models.MesFieldLine,
	models.MesFieldEquipment,
	models.MesFieldDate,
	models.MesFieldTime,
	models.MesFieldDuration,
	models.MesFieldEventCategory,
}

// Result reports one finished import. Accepted holds exactly the rows that
// were written; duplicates are only counted, never returned.
type Result struct {
	BatchID     string            `json:"batchID"`
	Accepted    []models.MesEvent `json:"accepted"`
	FilteredOut int               `json:"filteredOut"`
	Duplicates  int               `json:"duplicates"`
}

// Importer reads the downtime worksheet and writes new events.
type Importer struct {
	Repo *repository.MesRepo
	Cfg  config.MESConfig
}

// Import runs the full pipeline: parse the worksheet, apply the duration
// and category filters, set-difference against stored keys, batch-write
// the remainder. The batch write is all-or-nothing: an error means the
// import did not happen.
func (i *Importer) Import(ctx context.Context, workbook io.Reader, allowedCategories []string) (Result, error) {
	result := Result{BatchID: uuid.NewString()}

	rows, header, err := i.readSheet(workbook)
	if err != nil {
		return Result{}, err
	}

	allowed := make(map[string]struct{}, len(allowedCategories))
	for _, c := range allowedCategories {
		allowed[c] = struct{}{}
	}

	existing, err := i.Repo.ExistingKeys(ctx)
	if err != nil {
		return Result{}, err
	}

	// Index into result.Accepted per key: a repeated key inside one file
	// keeps the last row, mirroring last-write-wins in the store.
	indexByKey := make(map[string]int)

	for _, row := range rows {
		event := eventFromRow(header, row)

		if event.DurationMinutes <= float64(i.Cfg.MinDurationMinutes) {
			result.FilteredOut++
			continue
		}
		if _, ok := allowed[event.EventCategory]; !ok {
			result.FilteredOut++
			continue
		}

		event.DocumentKey = repository.DeriveDocumentKey(event.Line, event.Equipment, event.Date, event.Time)

		if _, ok := existing[event.DocumentKey]; ok {
			result.Duplicates++
			continue
		}
		if idx, ok := indexByKey[event.DocumentKey]; ok {
			result.Accepted[idx] = event
			continue
		}
		indexByKey[event.DocumentKey] = len(result.Accepted)
		result.Accepted = append(result.Accepted, event)
	}

	if len(result.Accepted) > 0 {
		if err := i.Repo.InsertBatch(ctx, result.Accepted); err != nil {
			return Result{}, err
		}
	}

	slog.Info("MES import finished",
		"batchID", result.BatchID,
		"accepted", len(result.Accepted),
		"filteredOut", result.FilteredOut,
		"duplicates", result.Duplicates,
	)
	return result, nil
}

// readSheet loads the downtime worksheet and validates its header.
func (i *Importer) readSheet(workbook io.Reader) (rows [][]string, header map[string]int, err error) {
	f, err := excelize.OpenReader(workbook)
	if err != nil {
		return nil, nil, errs.Validationf("cannot read workbook: %v", err)
	}
	defer f.Close()

	all, err := f.GetRows(i.Cfg.SheetName)
	if err != nil {
		return nil, nil, errs.Validationf("worksheet %q not found", i.Cfg.SheetName)
	}
	if len(all) < 1 {
		return nil, nil, errs.Validationf("worksheet %q is empty", i.Cfg.SheetName)
	}

	header = make(map[string]int, len(all[0]))
	for idx, name := range all[0] {
		header[strings.TrimSpace(name)] = idx
	}
	for _, col := range requiredColumns {
		if _, ok := header[col]; !ok {
			return nil, nil, errs.Validationf("worksheet %q is missing column %q", i.Cfg.SheetName, col)
		}
	}
	return all[1:], header, nil
}

// eventFromRow maps one sheet row onto the event model. Cells already come
// back from excelize as display strings, which is exactly the text form
// the store keeps.
func eventFromRow(header map[string]int, row []string) models.MesEvent {
	cell := func(col string) string {
		idx, ok := header[col]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}
	duration, _ := strconv.ParseFloat(strings.ReplaceAll(cell(models.MesFieldDuration), ",", "."), 64)

	return models.MesEvent{
		Line:            cell(models.MesFieldLine),
		Date:            cell(models.MesFieldDate),
		Time:            cell(models.MesFieldTime),
		DurationMinutes: duration,
		MicroMacro:      cell(models.MesFieldMicroMacro),
		EventCategory:   cell(models.MesFieldEventCategory),
		Name:            cell(models.MesFieldName),
		Equipment:       cell(models.MesFieldEquipment),
		ProductivePoint: cell(models.MesFieldProductive),
		SubAssembly:     cell(models.MesFieldSubAssembly),
		Component:       cell(models.MesFieldComponent),
		FailureMode:     cell(models.MesFieldFailureMode),
		Description:     cell(models.MesFieldDescription),
		Lot:             cell(models.MesFieldLot),
		Resultant:       cell(models.MesFieldResultant),
		ProductFlow:     cell(models.MesFieldProductFlow),
		IntervalFlow:    cell(models.MesFieldIntervalFlow),
		Shift:           cell(models.MesFieldShift),
		Bottleneck:      cell(models.MesFieldBottleneck),
		ExternalFilter:  cell(models.MesFieldExternal),
	}
}
