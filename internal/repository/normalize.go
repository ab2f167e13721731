package repository

import (
	"five-whys-api-server/internal/errs"
	"five-whys-api-server/internal/models"
)

// Normalize applies the default-value rule to a flattened record: any field
// submitted as an empty string or an empty tag list becomes the
// "Não informado" sentinel. Non-empty values pass through untouched.
// Returns a new map; the input is not modified.
func Normalize(fields map[string]string) map[string]string {
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		if v == "" || v == "[]" {
			out[k] = models.NotInformed
		} else {
			out[k] = v
		}
	}
	return out
}

// RequireKeyFields rejects records whose key components are missing. A key
// derived from sentinel values would still be stored, but it no longer
// identifies anything; refusing up front beats a junk document.
func RequireKeyFields(fields map[string]string) error {
	for _, f := range []string{models.FieldLine, models.FieldEquipment, models.FieldDate, models.FieldTime} {
		if v := fields[f]; v == "" || v == models.NotInformed {
			return errs.Validationf("required field %q is missing", f)
		}
	}
	return nil
}
