package models

import "strconv"

// Wire field names of a document in the "mes_events" collection. The MES
// export's column headers are stored as-is.
const (
	MesFieldLine          = "Linha"
	MesFieldDate          = "Data"
	MesFieldTime          = "Hora"
	MesFieldDuration      = "Tempo"
	MesFieldMicroMacro    = "Micro/Macro"
	MesFieldEventCategory = "Definição do Evento"
	MesFieldName          = "Nome"
	MesFieldEquipment     = "Equipamento"
	MesFieldProductive    = "Ponto Produtivo"
	MesFieldSubAssembly   = "SubConjunto"
	MesFieldComponent     = "Componente"
	MesFieldFailureMode   = "Modo de Falha - Sintoma"
	MesFieldDescription   = "Descrição"
	MesFieldLot           = "Lote"
	MesFieldResultant     = "Resultante"
	MesFieldProductFlow   = "FluxoProduto"
	MesFieldIntervalFlow  = "FluxoIntervalo"
	MesFieldShift         = "Turno"
	MesFieldBottleneck    = "Gargalo"
	MesFieldExternal      = "FiltroExterna"
	MesFieldDocument      = "documento"
)

// shiftLabels maps the feed's English shift names to the local ones used
// everywhere else in the system. Applied on read, never on disk.
var shiftLabels = map[string]string{
	"Morning":   "Turno A",
	"Afternoon": "Turno B",
	"Evening":   "Turno C",
}

// LocalShift translates a MES shift name; unknown values pass through.
func LocalShift(s string) string {
	if local, ok := shiftLabels[s]; ok {
		return local
	}
	return s
}

// MesEvent is an imported downtime record. Created only by the importer,
// never mutated afterwards.
type MesEvent struct {
	DocumentKey     string  `json:"document"`
	Line            string  `json:"line"`
	Date            string  `json:"date"`
	Time            string  `json:"time"`
	DurationMinutes float64 `json:"durationMinutes"`
	MicroMacro      string  `json:"microMacro"`
	EventCategory   string  `json:"eventCategory"`
	Name            string  `json:"name"`
	Equipment       string  `json:"equipment"`
	ProductivePoint string  `json:"productivePoint"`
	SubAssembly     string  `json:"subAssembly"`
	Component       string  `json:"component"`
	FailureMode     string  `json:"failureMode"`
	Description     string  `json:"description"`
	Lot             string  `json:"lot"`
	Resultant       string  `json:"resultant"`
	ProductFlow     string  `json:"productFlow"`
	IntervalFlow    string  `json:"intervalFlow"`
	Shift           string  `json:"shift"`
	Bottleneck      string  `json:"bottleneck"`
	ExternalFilter  string  `json:"externalFilter"`
}

func (e MesEvent) Fields() map[string]string {
	return map[string]string{
		MesFieldLine:          e.Line,
		MesFieldDate:          e.Date,
		MesFieldTime:          e.Time,
		MesFieldDuration:      strconv.FormatFloat(e.DurationMinutes, 'f', -1, 64),
		MesFieldMicroMacro:    e.MicroMacro,
		MesFieldEventCategory: e.EventCategory,
		MesFieldName:          e.Name,
		MesFieldEquipment:     e.Equipment,
		MesFieldProductive:    e.ProductivePoint,
		MesFieldSubAssembly:   e.SubAssembly,
		MesFieldComponent:     e.Component,
		MesFieldFailureMode:   e.FailureMode,
		MesFieldDescription:   e.Description,
		MesFieldLot:           e.Lot,
		MesFieldResultant:     e.Resultant,
		MesFieldProductFlow:   e.ProductFlow,
		MesFieldIntervalFlow:  e.IntervalFlow,
		MesFieldShift:         e.Shift,
		MesFieldBottleneck:    e.Bottleneck,
		MesFieldExternal:      e.ExternalFilter,
		MesFieldDocument:      e.DocumentKey,
	}
}

// MesEventFromFields rebuilds an imported event. The shift label is
// localized here so readers never see the feed's raw names.
func MesEventFromFields(key string, fields map[string]string) MesEvent {
	duration, _ := strconv.ParseFloat(fields[MesFieldDuration], 64)
	return MesEvent{
		DocumentKey:     key,
		Line:            fields[MesFieldLine],
		Date:            fields[MesFieldDate],
		Time:            fields[MesFieldTime],
		DurationMinutes: duration,
		MicroMacro:      fields[MesFieldMicroMacro],
		EventCategory:   fields[MesFieldEventCategory],
		Name:            fields[MesFieldName],
		Equipment:       fields[MesFieldEquipment],
		ProductivePoint: fields[MesFieldProductive],
		SubAssembly:     fields[MesFieldSubAssembly],
		Component:       fields[MesFieldComponent],
		FailureMode:     fields[MesFieldFailureMode],
		Description:     fields[MesFieldDescription],
		Lot:             fields[MesFieldLot],
		Resultant:       fields[MesFieldResultant],
		ProductFlow:     fields[MesFieldProductFlow],
		IntervalFlow:    fields[MesFieldIntervalFlow],
		Shift:           LocalShift(fields[MesFieldShift]),
		Bottleneck:      fields[MesFieldBottleneck],
		ExternalFilter:  fields[MesFieldExternal],
	}
}
