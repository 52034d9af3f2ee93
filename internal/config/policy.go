package config

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/reminder"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/schedule"
)

//go:embed policy.yaml
var defaultPolicy []byte

// Policy é o arquivo com as tabelas de negócio do salão: expediente,
// feriados por ano e regras de lembrete.
type Policy struct {
	BusinessHours struct {
		Weekdays schedule.Hours `yaml:"weekdays"`
		Saturday schedule.Hours `yaml:"saturday"`
	} `yaml:"business_hours"`

	// Holidays é indexado pelo ano ("2025": [...]).
	Holidays map[string][]schedule.Holiday `yaml:"holidays"`

	Reminders struct {
		Default struct {
			ReminderDays int    `yaml:"reminder_days"`
			Message      string `yaml:"message"`
		} `yaml:"default"`
		Categories []reminder.Category `yaml:"categories"`
		Milestone  reminder.Milestone  `yaml:"milestone"`
		Templates  reminder.Templates  `yaml:"templates"`
	} `yaml:"reminders"`
}

// LoadPolicy lê o arquivo indicado ou, se vazio, a política embutida.
func LoadPolicy(path string) (*Policy, error) {
	raw := defaultPolicy
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read policy file: %w", err)
		}
		raw = b
	}
	return ParsePolicy(raw)
}

func ParsePolicy(raw []byte) (*Policy, error) {
	var p Policy
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("parse policy: %w", err)
	}

	if p.BusinessHours.Weekdays.Open == "" {
		p.BusinessHours.Weekdays = schedule.DefaultWeekdayHours
	}
	if p.BusinessHours.Saturday.Open == "" {
		p.BusinessHours.Saturday = schedule.DefaultSaturdayHours
	}

	return &p, nil
}

func (p *Policy) Schedule() (*schedule.Policy, error) {
	years := make([]string, 0, len(p.Holidays))
	for y := range p.Holidays {
		if _, err := strconv.Atoi(y); err != nil {
			return nil, fmt.Errorf("holidays: invalid year %q", y)
		}
		years = append(years, y)
	}
	sort.Strings(years)

	var all []schedule.Holiday
	for _, y := range years {
		for _, h := range p.Holidays[y] {
			if len(h.Date) < 4 || h.Date[:4] != y {
				return nil, fmt.Errorf("holiday %s listed under year %s", h.Date, y)
			}
			all = append(all, h)
		}
	}

	return schedule.NewPolicy(p.BusinessHours.Weekdays, p.BusinessHours.Saturday, all)
}

func (p *Policy) ReminderScheduler() (*reminder.Scheduler, error) {
	fallback := reminder.DefaultRule()
	if p.Reminders.Default.ReminderDays > 0 {
		fallback.ReminderDays = p.Reminders.Default.ReminderDays
	}
	if p.Reminders.Default.Message != "" {
		fallback.Message = p.Reminders.Default.Message
	}

	rules, err := reminder.NewRuleSet(p.Reminders.Categories, fallback)
	if err != nil {
		return nil, err
	}

	return reminder.NewScheduler(rules, p.Reminders.Milestone, p.Reminders.Templates), nil
}
