package models

// Fixed enumerations offered to the form front end. Taken from the plant's
// existing vocabulary; stored records reference them by label.
var (
	Shifts = []string{"Turno A", "Turno B", "Turno C"}

	EventCategories = []string{
		"Automação",
		"Eletricidade",
		"Elétrico",
		"Falha - Automação",
		"Falha - Elétrica",
		"Falha - Mecânica",
		"Falha - Operacional",
		"Mecânica",
		"Operacional",
	}

	FailureTypes = []string{
		"Máquina",
		"Mão-de-obra",
		"Método",
		"Materiais",
		"Meio ambiente",
		"Medição",
		"Outra",
	}

	DeteriorationTypes = []string{"Forçada", "Natural", "Nenhuma"}
)

// Wire field names of a document in the "catalog" collection.
const (
	CatalogFieldLine      = "Linha"
	CatalogFieldEquipment = "equipamento"
)

// CatalogEntry is one line/equipment pair of the plant catalog
// (SAP level-3 breakdown). Read-only reference data.
type CatalogEntry struct {
	Line      string `json:"line"`
	Equipment string `json:"equipment"`
}

func (e CatalogEntry) Fields() map[string]string {
	return map[string]string{
		CatalogFieldLine:      e.Line,
		CatalogFieldEquipment: e.Equipment,
	}
}

func CatalogEntryFromFields(fields map[string]string) CatalogEntry {
	return CatalogEntry{
		Line:      fields[CatalogFieldLine],
		Equipment: fields[CatalogFieldEquipment],
	}
}
