package schedule

import (
	"fmt"
	"sort"
	"time"
)

// Hours descreve o expediente de uma classe de dias da semana.
type Hours struct {
	Open       string `yaml:"open" json:"open"`
	Close      string `yaml:"close" json:"close"`
	LunchStart string `yaml:"lunch_start" json:"lunch_start"`
	LunchEnd   string `yaml:"lunch_end" json:"lunch_end"`
}

type Holiday struct {
	Date string `yaml:"date" json:"date"`
	Name string `yaml:"name" json:"name"`
}

var (
	DefaultWeekdayHours  = Hours{Open: "08:00", Close: "18:00", LunchStart: "12:00", LunchEnd: "13:00"}
	DefaultSaturdayHours = Hours{Open: "08:00", Close: "20:00", LunchStart: "12:00", LunchEnd: "13:00"}
)

type window struct {
	open       int
	close      int
	lunchStart int
	lunchEnd   int
	hasLunch   bool
}

// Policy is the salon calendar: business hours per weekday class plus a
// static holiday table. It is immutable after construction and safe for
// concurrent use.
type Policy struct {
	weekdays window
	saturday window
	holidays map[string]string
	ordered  []Holiday
}

func NewPolicy(weekdays, saturday Hours, holidays []Holiday) (*Policy, error) {
	wd, err := compileHours(weekdays)
	if err != nil {
		return nil, fmt.Errorf("weekday hours: %w", err)
	}
	sat, err := compileHours(saturday)
	if err != nil {
		return nil, fmt.Errorf("saturday hours: %w", err)
	}

	p := &Policy{
		weekdays: wd,
		saturday: sat,
		holidays: make(map[string]string, len(holidays)),
	}

	for _, h := range holidays {
		if _, err := time.Parse(DateLayout, h.Date); err != nil {
			return nil, fmt.Errorf("holiday %q: invalid date", h.Date)
		}
		if _, dup := p.holidays[h.Date]; dup {
			return nil, fmt.Errorf("holiday %q: duplicated date", h.Date)
		}
		p.holidays[h.Date] = h.Name
		p.ordered = append(p.ordered, h)
	}

	sort.Slice(p.ordered, func(i, j int) bool {
		return p.ordered[i].Date < p.ordered[j].Date
	})

	return p, nil
}

func compileHours(h Hours) (window, error) {
	var w window
	var err error

	if w.open, err = ParseClock(h.Open); err != nil {
		return w, err
	}
	if w.close, err = ParseClock(h.Close); err != nil {
		return w, err
	}
	if w.open >= w.close {
		return w, fmt.Errorf("open %s must be before close %s", h.Open, h.Close)
	}

	if h.LunchStart == "" && h.LunchEnd == "" {
		return w, nil
	}
	if w.lunchStart, err = ParseClock(h.LunchStart); err != nil {
		return w, err
	}
	if w.lunchEnd, err = ParseClock(h.LunchEnd); err != nil {
		return w, err
	}
	if w.lunchStart >= w.lunchEnd || w.lunchStart < w.open || w.lunchEnd > w.close {
		return w, fmt.Errorf("lunch %s-%s outside business hours", h.LunchStart, h.LunchEnd)
	}
	w.hasLunch = true

	return w, nil
}

// IsSunday olha apenas o dia da semana; independe da tabela de feriados.
func (p *Policy) IsSunday(date time.Time) bool {
	return date.Weekday() == time.Sunday
}

// IsHoliday faz busca exata pela data; não há regras recorrentes.
func (p *Policy) IsHoliday(date time.Time) (string, bool) {
	name, ok := p.holidays[DateKey(date)]
	return name, ok
}

func (p *Policy) IsOpen(date time.Time) bool {
	_, closed := p.Closure(date)
	return !closed
}

// Closure informa o motivo de o salão estar fechado na data.
func (p *Policy) Closure(date time.Time) (string, bool) {
	if p.IsSunday(date) {
		return "Salão fechado aos domingos", true
	}
	if name, ok := p.IsHoliday(date); ok {
		return fmt.Sprintf("Salão fechado no feriado: %s", name), true
	}
	return "", false
}

// Holidays lista os feriados do ano, em ordem.
func (p *Policy) Holidays(year int) []Holiday {
	prefix := fmt.Sprintf("%04d-", year)

	out := make([]Holiday, 0)
	for _, h := range p.ordered {
		if len(h.Date) >= 5 && h.Date[:5] == prefix {
			out = append(out, h)
		}
	}
	return out
}

// windowFor escolhe o expediente pelo dia da semana, sem olhar feriados.
func (p *Policy) windowFor(date time.Time) window {
	if date.Weekday() == time.Saturday {
		return p.saturday
	}
	return p.weekdays
}

// ClosingTime devolve o horário de fechamento ("HH:MM") da classe do dia.
func (p *Policy) ClosingTime(date time.Time) string {
	return FormatClock(p.windowFor(date).close)
}
