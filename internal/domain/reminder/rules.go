package reminder

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

const (
	CategoryDefault = "padrao"

	DefaultReminderDays = 15
	DefaultMessage      = "Olá {cliente}! Que tal agendar um novo atendimento? Já faz {dias} dias desde sua última visita! 💇‍♀️"
)

type Rule struct {
	Category     string `json:"category"`
	ReminderDays int    `json:"reminder_days"`
	Message      string `json:"message"`
}

// Category agrupa serviços que compartilham a mesma regra de retorno.
type Category struct {
	Key          string   `yaml:"key"`
	ReminderDays int      `yaml:"reminder_days"`
	Message      string   `yaml:"message"`
	Services     []string `yaml:"services"`
}

// RuleSet resolve a regra de lembrete de um serviço. Imutável após criado.
type RuleSet struct {
	byCategory map[string]Rule
	categoryOf map[string]string
	fallback   Rule
}

func DefaultRule() Rule {
	return Rule{
		Category:     CategoryDefault,
		ReminderDays: DefaultReminderDays,
		Message:      DefaultMessage,
	}
}

func NewRuleSet(categories []Category, fallback Rule) (*RuleSet, error) {
	if fallback.Category == "" {
		fallback.Category = CategoryDefault
	}
	if fallback.ReminderDays <= 0 || fallback.Message == "" {
		return nil, fmt.Errorf("default reminder rule must have days and message")
	}

	rs := &RuleSet{
		byCategory: make(map[string]Rule, len(categories)),
		categoryOf: make(map[string]string),
		fallback:   fallback,
	}

	for _, c := range categories {
		if c.Key == "" || c.Key == CategoryDefault {
			return nil, fmt.Errorf("invalid reminder category key %q", c.Key)
		}
		if c.ReminderDays <= 0 {
			return nil, fmt.Errorf("category %q: reminder_days must be positive", c.Key)
		}
		if _, dup := rs.byCategory[c.Key]; dup {
			return nil, fmt.Errorf("category %q declared twice", c.Key)
		}

		rs.byCategory[c.Key] = Rule{
			Category:     c.Key,
			ReminderDays: c.ReminderDays,
			Message:      c.Message,
		}

		for _, name := range c.Services {
			if other, taken := rs.categoryOf[name]; taken {
				return nil, fmt.Errorf("service %q in categories %q and %q", name, other, c.Key)
			}
			rs.categoryOf[name] = c.Key
		}
	}

	return rs, nil
}

// RuleFor busca pelo nome exato do serviço; nomes desconhecidos caem na
// regra padrão.
func (rs *RuleSet) RuleFor(serviceName string) Rule {
	if key, ok := rs.categoryOf[serviceName]; ok {
		return rs.byCategory[key]
	}
	return rs.fallback
}

func (rs *RuleSet) RuleForCategory(key string) (Rule, bool) {
	if key == CategoryDefault {
		return rs.fallback, true
	}
	r, ok := rs.byCategory[key]
	return r, ok
}

// RuleForService prefere a categoria gravada no serviço ao nome dele.
func (rs *RuleSet) RuleForService(svc *models.Service, serviceName string) Rule {
	if svc != nil && svc.ReminderCategory != "" {
		if r, ok := rs.RuleForCategory(svc.ReminderCategory); ok {
			return r
		}
	}
	return rs.RuleFor(serviceName)
}

func (rs *RuleSet) NextReminderDate(lastDate time.Time, serviceName string) time.Time {
	return lastDate.AddDate(0, 0, rs.RuleFor(serviceName).ReminderDays)
}
