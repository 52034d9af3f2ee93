package schedule

import (
	"fmt"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"

	// SlotMinutes é a granularidade fixa da agenda.
	SlotMinutes = 30
)

// ParseClock converte "HH:MM" em minutos desde a meia-noite.
func ParseClock(hm string) (int, error) {
	t, err := time.Parse(ClockLayout, hm)
	if err != nil {
		return 0, fmt.Errorf("invalid clock %q: %w", hm, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock converte minutos desde a meia-noite em "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// DateKey é a representação do dia civil usada em agendamentos e feriados.
func DateKey(date time.Time) string {
	return date.Format(DateLayout)
}
