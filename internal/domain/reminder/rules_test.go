package reminder

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

const (
	chemicalMessage = "Olá {cliente}! Está na hora de cuidar da sua química! Já faz {dias} dias desde seu último {servico}. Que tal agendar uma manutenção? 💇‍♀️✨"
	otherMessage    = "Olá {cliente}! Que tal repetir aquele {servico} maravilhoso? Já faz {dias} dias e você merece se cuidar! Vamos agendar? 💄✨"
)

func salonCategories() []Category {
	return []Category{
		{
			Key:          "quimica",
			ReminderDays: 15,
			Message:      chemicalMessage,
			Services: []string{
				"Combo de mechas + corte",
				"Realinhamento Capilar",
				"Coloração De Raiz Com Cobertura De Brancos",
				"Mechas",
			},
		},
		{
			Key:          "outros",
			ReminderDays: 15,
			Message:      otherMessage,
			Services: []string{
				"COMBO Tratamento Keune + CORTE + Finalização",
				"Tratamentos Keune",
				"Penteados",
				"Corte Feminino",
				"Escova Lisa ou Modelada",
				"Finalização Em Cabelos Com Curvatura",
			},
		},
	}
}

func newTestRules(t *testing.T) *RuleSet {
	t.Helper()
	rs, err := NewRuleSet(salonCategories(), DefaultRule())
	require.NoError(t, err)
	return rs
}

func TestRuleFor(t *testing.T) {
	rs := newTestRules(t)

	r := rs.RuleFor("Mechas")
	assert.Equal(t, "quimica", r.Category)
	assert.Equal(t, 15, r.ReminderDays)
	assert.Equal(t, chemicalMessage, r.Message)

	r = rs.RuleFor("Penteados")
	assert.Equal(t, "outros", r.Category)

	r = rs.RuleFor("Manicure")
	assert.Equal(t, CategoryDefault, r.Category)
	assert.Equal(t, DefaultReminderDays, r.ReminderDays)
	assert.Equal(t, DefaultMessage, r.Message)
}

func TestRuleFor_ExactMatchOnly(t *testing.T) {
	rs := newTestRules(t)

	assert.Equal(t, CategoryDefault, rs.RuleFor("mechas").Category)
	assert.Equal(t, CategoryDefault, rs.RuleFor(" Mechas").Category)
	assert.Equal(t, CategoryDefault, rs.RuleFor("Mecha").Category)
}

func TestRuleForService_PrefersStoredCategory(t *testing.T) {
	rs := newTestRules(t)

	renamed := &models.Service{Name: "Mechas Premium", ReminderCategory: "quimica"}
	assert.Equal(t, "quimica", rs.RuleForService(renamed, renamed.Name).Category)

	unknownKey := &models.Service{Name: "Mechas", ReminderCategory: "inexistente"}
	assert.Equal(t, "quimica", rs.RuleForService(unknownKey, unknownKey.Name).Category)

	assert.Equal(t, "outros", rs.RuleForService(nil, "Corte Feminino").Category)
}

func TestNextReminderDate(t *testing.T) {
	rs := newTestRules(t)
	last := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC), rs.NextReminderDate(last, "Mechas"))
	assert.Equal(t, time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC), rs.NextReminderDate(last, "Serviço sem regra"))

	endOfMonth := time.Date(2025, 2, 20, 15, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 7, 15, 30, 0, 0, time.UTC), rs.NextReminderDate(endOfMonth, "Penteados"))
}

func TestNewRuleSet_Invalid(t *testing.T) {
	_, err := NewRuleSet(nil, Rule{})
	assert.Error(t, err)

	_, err = NewRuleSet([]Category{{Key: "a", ReminderDays: 0}}, DefaultRule())
	assert.Error(t, err)

	_, err = NewRuleSet([]Category{
		{Key: "a", ReminderDays: 10, Services: []string{"Mechas"}},
		{Key: "b", ReminderDays: 20, Services: []string{"Mechas"}},
	}, DefaultRule())
	assert.Error(t, err)

	_, err = NewRuleSet([]Category{{Key: CategoryDefault, ReminderDays: 10}}, DefaultRule())
	assert.Error(t, err)
}

var placeholder = regexp.MustCompile(`\{[a-z]+\}`)

func TestRender(t *testing.T) {
	out := Render("Olá {cliente}! ... {servico} ... {dias}", Vars{Client: "Ana", Service: "Corte", Days: 15})

	assert.Equal(t, "Olá Ana! ... Corte ... 15", out)
	assert.False(t, placeholder.MatchString(out))
}

func TestRender_AllOccurrences(t *testing.T) {
	out := Render("{cliente}, {cliente}! {nome} volte em {dias} dias ({dias})", Vars{Client: "Ana", Days: 15})

	assert.Equal(t, "Ana, Ana! Ana volte em 15 dias (15)", out)
}

func TestRender_BuiltInTemplates(t *testing.T) {
	for _, tmpl := range []string{chemicalMessage, otherMessage, DefaultMessage, DefaultMilestoneMessage, DefaultBirthdayMessage, DefaultPromotionMessage} {
		out := Render(tmpl, Vars{Client: "Ana", Service: "Corte", Days: 15, Visits: 10})
		assert.False(t, placeholder.MatchString(out), out)
	}
}
