// Package export serializes the currently materialized record set for
// download. Pass-through of the stored text fields; no schema versioning.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"five-whys-api-server/internal/models"
)

// columns fixes the export order: document key first, then the form fields
// in the order the form presents them.
var columns = []string{
	"document",
	models.FieldDate,
	models.FieldShift,
	models.FieldTime,
	models.FieldEventCategory,
	models.FieldLine,
	models.FieldEquipment,
	models.FieldTriggerMinutes,
	models.FieldAnomaly,
	models.FieldCorrection,
	models.FieldWhy1,
	models.FieldWhy2,
	models.FieldWhy3,
	models.FieldWhy4,
	models.FieldWhy5,
	models.FieldFailureTypes,
	models.FieldFailureWear,
	models.FieldCorrectionTypes,
	models.FieldCorrectionWear,
	models.FieldActions,
	models.FieldResponsibleID,
	models.FieldResponsibleFix,
	models.FieldResponsibleEmail,
	models.FieldManager,
	models.FieldMaintNotes,
	models.FieldMaintOrders,
	models.FieldStatus,
}

func rowValues(o models.Occurrence) []string {
	fields := o.Fields()
	row := make([]string, len(columns))
	row[0] = o.DocumentKey
	for i, col := range columns[1:] {
		row[i+1] = fields[col]
	}
	return row
}

// OccurrencesCSV streams the record set as CSV.
func OccurrencesCSV(w io.Writer, occurrences []models.Occurrence) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}
	for _, o := range occurrences {
		if err := cw.Write(rowValues(o)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// OccurrencesXLSX renders the record set as a single-sheet workbook.
func OccurrencesXLSX(occurrences []models.Occurrence) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"

	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return nil, err
		}
	}
	for rowIdx, o := range occurrences {
		for colIdx, value := range rowValues(o) {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf, nil
}
