package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func newTestScheduler(t *testing.T) *Scheduler {
	t.Helper()
	return NewScheduler(newTestRules(t), Milestone{Visits: DefaultMilestoneVisits}, Templates{})
}

func TestScheduler_OnCompleted_Maintenance(t *testing.T) {
	s := newTestScheduler(t)
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

	client := &models.Client{ID: 7, Name: "Ana"}
	ap := &models.Appointment{ID: 3, ServiceName: "Mechas"}

	out := s.OnCompleted(client, ap, nil, 4, now)

	require.Len(t, out, 1)
	r := out[0]
	assert.Equal(t, string(TypeMaintenance), r.Type)
	assert.Equal(t, string(StatusPending), r.Status)
	assert.Equal(t, uint(7), r.ClientID)
	require.NotNil(t, r.AppointmentID)
	assert.Equal(t, uint(3), *r.AppointmentID)
	assert.Equal(t, time.Date(2025, 1, 16, 10, 0, 0, 0, time.UTC), r.ScheduledDate)
	assert.Contains(t, r.Message, "Ana")
	assert.Contains(t, r.Message, "15 dias")
	assert.Contains(t, r.Message, "Mechas")
}

func TestScheduler_OnCompleted_MilestoneExactlyOnce(t *testing.T) {
	s := newTestScheduler(t)
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	client := &models.Client{ID: 1, Name: "Beatriz"}
	ap := &models.Appointment{ID: 9, ServiceName: "Corte Feminino"}

	milestones := func(visits int) int {
		n := 0
		for _, r := range s.OnCompleted(client, ap, nil, visits, now) {
			if r.Type == string(TypeMilestone) {
				n++
				assert.Equal(t, now, r.ScheduledDate)
				assert.Contains(t, r.Message, "10 atendimentos")
			}
		}
		return n
	}

	assert.Equal(t, 0, milestones(9))
	assert.Equal(t, 1, milestones(10))
	assert.Equal(t, 0, milestones(11))
	assert.Equal(t, 0, milestones(20))
}

func TestScheduler_ConfigurableMilestone(t *testing.T) {
	s := NewScheduler(newTestRules(t), Milestone{Visits: 3, Message: "{cliente} chegou a {visitas}"}, Templates{})
	now := time.Now()

	out := s.OnCompleted(&models.Client{Name: "Carla"}, &models.Appointment{ServiceName: "Penteados"}, nil, 3, now)

	require.Len(t, out, 2)
	assert.Equal(t, "Carla chegou a 3", out[1].Message)

	disabled := NewScheduler(newTestRules(t), Milestone{}, Templates{})
	assert.Len(t, disabled.OnCompleted(&models.Client{}, &models.Appointment{}, nil, 10, now), 1)
}

func TestScheduler_Birthday(t *testing.T) {
	s := newTestScheduler(t)
	now := time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC)

	r := s.Birthday(&models.Client{ID: 2, Name: "Ana"}, now)

	assert.Equal(t, string(TypeBirthday), r.Type)
	assert.Equal(t, now, r.ScheduledDate)
	assert.Nil(t, r.AppointmentID)
	assert.Contains(t, r.Message, "Parabéns Ana")
}

func TestMarkSent(t *testing.T) {
	now := time.Now()
	r := &models.Reminder{Status: string(StatusPending)}

	require.NoError(t, MarkSent(r, now))
	assert.Equal(t, string(StatusSent), r.Status)
	require.NotNil(t, r.SentDate)

	assert.Error(t, MarkSent(r, now))
}

func TestParseType(t *testing.T) {
	typ, ok := ParseType("promocao")
	assert.True(t, ok)
	assert.Equal(t, TypePromotion, typ)

	_, ok = ParseType("manutencao")
	assert.False(t, ok)
}
