package grid

import (
	"sort"

	"donbalon-gateway/internal/domain"
	"donbalon-gateway/internal/timeutil"
)

// CellState classifies one (field, hour) cell of the schedule grid.
type CellState string

const (
	// StateNoTurno means no turno was materialized for the cell. It is
	// rendered differently from an occupied slot.
	StateNoTurno CellState = "no-turno"
	// StateAvailable means the turno exists and can be reserved.
	StateAvailable CellState = "available"
	// StateOccupied means the turno exists but is taken or blocked.
	StateOccupied CellState = "occupied"
)

// Tooltip texts shown on hover, matching the booking site's wording.
const (
	tooltipAvailable = "Haz click para reservar"
	tooltipOccupied  = "No disponible"
	tooltipNoTurno   = "No hay turno creado para este horario"
)

const (
	defaultFirstHour   = 8
	defaultColumnCount = 14
)

// CellKey addresses one cell of the grid.
type CellKey struct {
	FieldID int
	Hour    int
}

// Cell is the rendered state of one grid cell.
type Cell struct {
	FieldID    int        `json:"id_cancha"`
	Hour       int        `json:"hora"`
	State      CellState  `json:"estado"`
	Tooltip    string     `json:"tooltip"`
	ScheduleID int        `json:"id_horario,omitempty"`
	Selection  *Selection `json:"seleccion,omitempty"`
}

// Selection carries what a click on an available cell would book.
type Selection struct {
	FieldID    int    `json:"id_cancha"`
	ScheduleID int    `json:"id_horario"`
	Date       string `json:"fecha"`
}

// Row is one field's cells ordered by the grid's hour columns.
type Row struct {
	Field domain.Field `json:"cancha"`
	Cells []Cell       `json:"celdas"`
}

// Grid is the full availability matrix for one date.
type Grid struct {
	Date  string `json:"fecha"`
	Hours []int  `json:"horas"`
	Rows  []Row  `json:"filas"`
}

// Columns derives the grid's hour columns from the schedule definitions,
// sorted ascending and de-duplicated. With no definitions it falls back
// to fourteen hourly columns starting at 08:00.
func Columns(slots []domain.ScheduleSlot) []int {
	seen := make(map[int]bool, len(slots))
	hours := make([]int, 0, len(slots))
	for _, slot := range slots {
		hour, err := timeutil.HourOf(slot.StartTime)
		if err != nil {
			continue
		}
		if !seen[hour] {
			seen[hour] = true
			hours = append(hours, hour)
		}
	}
	if len(hours) == 0 {
		for i := 0; i < defaultColumnCount; i++ {
			hours = append(hours, defaultFirstHour+i)
		}
		return hours
	}
	sort.Ints(hours)
	return hours
}

// Build assembles the availability grid for one date. Turnos for other
// dates are ignored; a turno whose hour cannot be resolved from either
// its schedule definition or its own start time is skipped.
func Build(date string, fields []domain.Field, slots []domain.ScheduleSlot, turnos []domain.Turno) Grid {
	hours := Columns(slots)

	slotHours := make(map[int]int, len(slots))
	for _, slot := range slots {
		if hour, err := timeutil.HourOf(slot.StartTime); err == nil {
			slotHours[slot.ID] = hour
		}
	}

	cells := make(map[CellKey]domain.Turno, len(turnos))
	for _, turno := range turnos {
		if turno.Date != date {
			continue
		}
		hour, ok := slotHours[turno.ScheduleID]
		if !ok {
			parsed, err := timeutil.HourOf(turno.StartTime)
			if err != nil {
				continue
			}
			hour = parsed
		}
		cells[CellKey{FieldID: turno.FieldID, Hour: hour}] = turno
	}

	rows := make([]Row, 0, len(fields))
	for _, field := range fields {
		row := Row{Field: field, Cells: make([]Cell, 0, len(hours))}
		for _, hour := range hours {
			row.Cells = append(row.Cells, buildCell(date, field.ID, hour, cells))
		}
		rows = append(rows, row)
	}

	return Grid{Date: date, Hours: hours, Rows: rows}
}

func buildCell(date string, fieldID, hour int, cells map[CellKey]domain.Turno) Cell {
	turno, ok := cells[CellKey{FieldID: fieldID, Hour: hour}]
	if !ok {
		return Cell{
			FieldID: fieldID,
			Hour:    hour,
			State:   StateNoTurno,
			Tooltip: tooltipNoTurno,
		}
	}
	if turno.Status.IsAvailable() {
		return Cell{
			FieldID:    fieldID,
			Hour:       hour,
			State:      StateAvailable,
			Tooltip:    tooltipAvailable,
			ScheduleID: turno.ScheduleID,
			Selection: &Selection{
				FieldID:    fieldID,
				ScheduleID: turno.ScheduleID,
				Date:       date,
			},
		}
	}
	return Cell{
		FieldID:    fieldID,
		Hour:       hour,
		State:      StateOccupied,
		Tooltip:    tooltipOccupied,
		ScheduleID: turno.ScheduleID,
	}
}
