package reminder

import (
	"context"
	"time"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/reminder"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// GenerateBirthdayReminders cria um lembrete de aniversário por cliente
// aniversariante do dia. Rodar de novo no mesmo dia não duplica.
func (s *Service) GenerateBirthdayReminders(ctx context.Context) (int, error) {
	today := timezone.StartOfDay(s.now())
	tomorrow := today.AddDate(0, 0, 1)

	clients, err := s.repo.ListClientsWithBirthday(ctx)
	if err != nil {
		return 0, err
	}

	created := 0
	for i := range clients {
		client := &clients[i]
		if !birthdayOn(client, today) {
			continue
		}

		exists, err := s.repo.HasReminderBetween(ctx, client.ID, string(domain.TypeBirthday), today, tomorrow)
		if err != nil {
			return created, err
		}
		if exists {
			continue
		}

		r := s.scheduler.Birthday(client, today)
		if err := s.repo.CreateReminder(ctx, &r); err != nil {
			return created, err
		}
		created++
	}

	s.metrics.RemindersCreated(string(domain.TypeBirthday), created)
	s.log.Info("birthday reminders generated",
		zap.String("date", today.Format("2006-01-02")),
		zap.Int("created", created),
	)

	return created, nil
}

// birthdayOn compara mês e dia. Nascidos em 29/02 são lembrados em 28/02
// nos anos não bissextos.
func birthdayOn(client *models.Client, day time.Time) bool {
	if client.Birthday == nil {
		return false
	}

	b := client.Birthday.UTC()
	month, dom := b.Month(), b.Day()

	if month == time.February && dom == 29 && !isLeap(day.Year()) {
		dom = 28
	}

	return day.Month() == month && day.Day() == dom
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DueDigest conta os lembretes pendentes já vencidos e publica no gauge.
func (s *Service) DueDigest(ctx context.Context) (int64, error) {
	n, err := s.repo.CountDuePending(ctx, s.now())
	if err != nil {
		return 0, err
	}

	s.metrics.SetDuePending(n)
	if n > 0 {
		s.log.Info("reminders due", zap.Int64("pending", n))
	}

	return n, nil
}
