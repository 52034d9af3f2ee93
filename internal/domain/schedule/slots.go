package schedule

import "time"

// GenerateSlots lista os horários ofertáveis da data, em ordem crescente.
// Dias fechados não têm horários.
func (p *Policy) GenerateSlots(date time.Time) []string {
	if !p.IsOpen(date) {
		return []string{}
	}

	w := p.windowFor(date)

	slots := make([]string, 0, (w.close-w.open)/SlotMinutes)
	for cur := w.open; cur < w.close; cur += SlotMinutes {
		if w.hasLunch && cur >= w.lunchStart && cur < w.lunchEnd {
			continue
		}
		slots = append(slots, FormatClock(cur))
	}

	return slots
}

// OccupiedSlots lista cada passo de 30 minutos a partir de start enquanto
// estiver antes de start+duration. A última fração de slot conta inteira.
func OccupiedSlots(start string, durationMinutes int) []string {
	begin, err := ParseClock(start)
	if err != nil {
		return []string{}
	}

	end := begin + durationMinutes

	slots := make([]string, 0, durationMinutes/SlotMinutes+1)
	for cur := begin; cur < end; cur += SlotMinutes {
		slots = append(slots, FormatClock(cur))
	}

	return slots
}
