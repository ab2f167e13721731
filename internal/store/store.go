package store

import "context"

// Collection names.
const (
	CollOccurrences = "occurrences"
	CollMesEvents   = "mes_events"
	CollPendencies  = "pendencies"
	CollUsers       = "users"
	CollCatalog     = "catalog"
)

// Document is one entry of a collection: a flat field→string mapping under
// a caller-derived key. All persisted values are text (see models codec).
type Document struct {
	Key    string            `json:"document"`
	Fields map[string]string `json:"fields"`
}

// Store is the document-store contract. The database is consumed as an
// opaque keyed document container with query-by-collection semantics only.
type Store interface {
	// GetCollection returns every document of a collection.
	GetCollection(ctx context.Context, name string) ([]Document, error)
	// SetDocument writes a document. With merge, fields not present in
	// the write keep their stored values; without it the document is
	// replaced wholesale. Creates the document if absent either way.
	SetDocument(ctx context.Context, collection, key string, fields map[string]string, merge bool) error
	// UpdateDocument patches fields of an existing document and fails
	// with errs.ErrNotFound when the key is absent.
	UpdateDocument(ctx context.Context, collection, key string, fields map[string]string) error
	// InsertDocuments writes a batch; on error the batch is reported
	// failed as a whole, but part of it may have landed. Callers needing
	// all-or-nothing semantics compensate with DeleteDocuments.
	InsertDocuments(ctx context.Context, collection string, docs []Document) error
	// DeleteDocuments removes the given keys. Absent keys are not an
	// error.
	DeleteDocuments(ctx context.Context, collection string, keys []string) error
}
