package models

// Occurrence status values. Stored verbatim, so the Portuguese labels the
// legacy data carries are the canonical ones.
const (
	StatusPending   = "Pendente"
	StatusRectified = "Retificado"
	StatusApproved  = "Aprovado"
	StatusRejected  = "Reprovado"
)

// Wire field names of an occurrence document in the "occurrences" collection.
// These match the keys already present in stored data and must not change.
const (
	FieldDate             = "data"
	FieldShift            = "turno"
	FieldTime             = "hora"
	FieldEventCategory    = "definição do evento"
	FieldLine             = "linha"
	FieldEquipment        = "equipamento"
	FieldTriggerMinutes   = "gatilho"
	FieldAnomaly          = "descrição anomalia"
	FieldCorrection       = "correção"
	FieldWhy1             = "pq1"
	FieldWhy2             = "pq2"
	FieldWhy3             = "pq3"
	FieldWhy4             = "pq4"
	FieldWhy5             = "pq5"
	FieldFailureTypes     = "tipo de falha"
	FieldFailureWear      = "falha deterioização"
	FieldCorrectionTypes  = "tipo de correção"
	FieldCorrectionWear   = "correção deterioização"
	FieldActions          = "ações"
	FieldResponsibleID    = "responsável identificação"
	FieldResponsibleFix   = "responsável reparo"
	FieldResponsibleEmail = "email responsável"
	FieldManager          = "gestor"
	FieldMaintNotes       = "notas de manutenção"
	FieldMaintOrders      = "ordem manutenção"
	FieldStatus           = "status"
)

// Occurrence is a single 5-Why record.
type Occurrence struct {
	DocumentKey      string    `json:"document"`
	Date             string    `json:"date"`
	Shift            string    `json:"shift"`
	Time             string    `json:"time"`
	EventCategory    string    `json:"eventCategory"`
	Line             string    `json:"line"`
	Equipment        string    `json:"equipment"`
	TriggerMinutes   int       `json:"triggerMinutes"`
	Anomaly          string    `json:"anomaly"`
	Correction       string    `json:"correction"`
	Whys             [5]string `json:"whys"`
	FailureTypes     []string  `json:"failureTypes"`
	FailureWear      []string  `json:"failureWear"`
	CorrectionTypes  []string  `json:"correctionTypes"`
	CorrectionWear   []string  `json:"correctionWear"`
	Actions          string    `json:"actions"`
	ResponsibleID    string    `json:"responsibleIdentification"`
	ResponsibleFix   string    `json:"responsibleRepair"`
	ResponsibleEmail string    `json:"responsibleEmail"`
	Manager          string    `json:"manager"`
	MaintNotes       []string  `json:"maintenanceNotes"`
	MaintOrders      []string  `json:"maintenanceOrders"`
	Status           string    `json:"status"`
}

// Fields flattens the occurrence to the persisted string-map form. Every
// value is text; collections become the legacy list literal.
func (o Occurrence) Fields() map[string]string {
	return map[string]string{
		FieldDate:             o.Date,
		FieldShift:            o.Shift,
		FieldTime:             o.Time,
		FieldEventCategory:    o.EventCategory,
		FieldLine:             o.Line,
		FieldEquipment:        o.Equipment,
		FieldTriggerMinutes:   itoa(o.TriggerMinutes),
		FieldAnomaly:          o.Anomaly,
		FieldCorrection:       o.Correction,
		FieldWhy1:             o.Whys[0],
		FieldWhy2:             o.Whys[1],
		FieldWhy3:             o.Whys[2],
		FieldWhy4:             o.Whys[3],
		FieldWhy5:             o.Whys[4],
		FieldFailureTypes:     EncodeTagList(o.FailureTypes),
		FieldFailureWear:      EncodeTagList(o.FailureWear),
		FieldCorrectionTypes:  EncodeTagList(o.CorrectionTypes),
		FieldCorrectionWear:   EncodeTagList(o.CorrectionWear),
		FieldActions:          o.Actions,
		FieldResponsibleID:    o.ResponsibleID,
		FieldResponsibleFix:   o.ResponsibleFix,
		FieldResponsibleEmail: o.ResponsibleEmail,
		FieldManager:          o.Manager,
		FieldMaintNotes:       EncodeTagList(o.MaintNotes),
		FieldMaintOrders:      EncodeTagList(o.MaintOrders),
		FieldStatus:           o.Status,
	}
}

// OccurrenceFromFields rebuilds the typed record from a stored document.
// Numeric and list fields are re-parsed from their text form; unparseable
// trigger values come back as zero rather than failing the whole read.
func OccurrenceFromFields(key string, fields map[string]string) Occurrence {
	return Occurrence{
		DocumentKey:    key,
		Date:           fields[FieldDate],
		Shift:          fields[FieldShift],
		Time:           fields[FieldTime],
		EventCategory:  fields[FieldEventCategory],
		Line:           fields[FieldLine],
		Equipment:      fields[FieldEquipment],
		TriggerMinutes: atoi(fields[FieldTriggerMinutes]),
		Anomaly:        fields[FieldAnomaly],
		Correction:     fields[FieldCorrection],
		Whys: [5]string{
			fields[FieldWhy1],
			fields[FieldWhy2],
			fields[FieldWhy3],
			fields[FieldWhy4],
			fields[FieldWhy5],
		},
		FailureTypes:     DecodeTagList(fields[FieldFailureTypes]),
		FailureWear:      DecodeTagList(fields[FieldFailureWear]),
		CorrectionTypes:  DecodeTagList(fields[FieldCorrectionTypes]),
		CorrectionWear:   DecodeTagList(fields[FieldCorrectionWear]),
		Actions:          fields[FieldActions],
		ResponsibleID:    fields[FieldResponsibleID],
		ResponsibleFix:   fields[FieldResponsibleFix],
		ResponsibleEmail: fields[FieldResponsibleEmail],
		Manager:          fields[FieldManager],
		MaintNotes:       DecodeTagList(fields[FieldMaintNotes]),
		MaintOrders:      DecodeTagList(fields[FieldMaintOrders]),
		Status:           fields[FieldStatus],
	}
}
