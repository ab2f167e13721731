package models

// Wire field names of a document in the "pendencies" collection.
const (
	FieldPendencyDepartment  = "departamento"
	FieldPendencyUser        = "usuario"
	FieldPendencyDescription = "descrição"
)

// Pendency is a flagged potential issue awaiting promotion to a full
// occurrence. It never leaves the Pendente status.
type Pendency struct {
	DocumentKey   string `json:"document"`
	Date          string `json:"date"`
	Shift         string `json:"shift"`
	EventCategory string `json:"eventCategory"`
	Line          string `json:"line"`
	Equipment     string `json:"equipment"`
	Department    string `json:"department"`
	User          string `json:"user"`
	Description   string `json:"description"`
	Status        string `json:"status"`
}

func (p Pendency) Fields() map[string]string {
	return map[string]string{
		FieldDate:                p.Date,
		FieldShift:               p.Shift,
		FieldEventCategory:       p.EventCategory,
		FieldLine:                p.Line,
		FieldEquipment:           p.Equipment,
		FieldPendencyDepartment:  p.Department,
		FieldPendencyUser:        p.User,
		FieldPendencyDescription: p.Description,
		FieldStatus:              p.Status,
	}
}

func PendencyFromFields(key string, fields map[string]string) Pendency {
	return Pendency{
		DocumentKey:   key,
		Date:          fields[FieldDate],
		Shift:         fields[FieldShift],
		EventCategory: fields[FieldEventCategory],
		Line:          fields[FieldLine],
		Equipment:     fields[FieldEquipment],
		Department:    fields[FieldPendencyDepartment],
		User:          fields[FieldPendencyUser],
		Description:   fields[FieldPendencyDescription],
		Status:        fields[FieldStatus],
	}
}
