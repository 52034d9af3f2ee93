package appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/reminder"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/testutil"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

const tz = timezone.DefaultTimezone

type recordingAuditor struct {
	mu     sync.Mutex
	events []audit.Event
}

func (a *recordingAuditor) Dispatch(ev audit.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, ev)
}

type busyLocker struct{}

func (busyLocker) Acquire(context.Context, string) (func(), error) {
	return nil, lock.ErrBusy
}

// openLocker nunca trava: só o banco decide entre reservas simultâneas.
type openLocker struct{}

func (openLocker) Acquire(context.Context, string) (func(), error) {
	return func() {}, nil
}

// gatedRepo segura cada leitura do agendamento até todas as chamadas lerem,
// para que todas vejam o mesmo status aberto.
type gatedRepo struct {
	*repository.AppointmentGormRepository
	gate *sync.WaitGroup
}

func (r gatedRepo) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	ap, err := r.AppointmentGormRepository.GetAppointment(ctx, id)
	r.gate.Done()
	r.gate.Wait()
	return ap, err
}

// concurrently roda fn n vezes ao mesmo tempo e devolve os erros na ordem.
func concurrently(n int, fn func() error) []error {
	errs := make([]error, n)
	start := make(chan struct{})

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			errs[i] = fn()
		}(i)
	}

	close(start)
	wg.Wait()
	return errs
}

func countSuccess(t *testing.T, errs []error, code string) int {
	t.Helper()

	var ok int
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		requireCode(t, err, code)
	}
	return ok
}

type fixture struct {
	db        *gorm.DB
	repo      *repository.AppointmentGormRepository
	policy    *schedule.Policy
	scheduler *reminder.Scheduler
	auditor   *recordingAuditor
	now       time.Time

	client   models.Client
	mechas   models.Service
	penteado models.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	p, err := config.LoadPolicy("")
	require.NoError(t, err)

	policy, err := p.Schedule()
	require.NoError(t, err)

	scheduler, err := p.ReminderScheduler()
	require.NoError(t, err)

	db := testutil.OpenDB(t)

	f := &fixture{
		db:        db,
		repo:      repository.NewAppointmentGormRepository(db),
		policy:    policy,
		scheduler: scheduler,
		auditor:   &recordingAuditor{},
		now:       time.Date(2025, 1, 6, 8, 0, 0, 0, timezone.Location(tz)),
		client:    models.Client{Name: "Ana", WhatsApp: "(11) 98888-7777"},
		mechas:    models.Service{Name: "Mechas", DurationMin: 120, Price: 250},
		penteado:  models.Service{Name: "Penteados", DurationMin: 30, Price: 80},
	}

	require.NoError(t, db.Create(&f.client).Error)
	require.NoError(t, db.Create(&f.mechas).Error)
	require.NoError(t, db.Create(&f.penteado).Error)

	return f
}

func (f *fixture) clock() time.Time { return f.now }

func (f *fixture) create(locker Locker) *CreateAppointment {
	uc := NewCreateAppointment(f.repo, f.policy, locker, f.auditor, nil, zap.NewNop(), tz)
	uc.now = f.clock
	return uc
}

func (f *fixture) book(t *testing.T, serviceID uint, date, hm string) *models.Appointment {
	t.Helper()

	ap, err := f.create(lock.NewLocalLocker(time.Second)).Execute(context.Background(), CreateAppointmentInput{
		ClientID:  f.client.ID,
		ServiceID: serviceID,
		Date:      date,
		Time:      hm,
	})
	require.NoError(t, err)
	return ap
}

func requireCode(t *testing.T, err error, code string) httperr.BusinessError {
	t.Helper()

	require.Error(t, err)
	be, ok := httperr.AsBusiness(err)
	require.True(t, ok, "expected business error, got %v", err)
	require.Equal(t, code, be.Code)
	return be
}

func TestCreateAppointment_Success(t *testing.T) {
	f := newFixture(t)

	ap := f.book(t, f.mechas.ID, "2025-01-07", "09:00")

	assert.NotZero(t, ap.ID)
	assert.Equal(t, "agendado", ap.Status)
	assert.Equal(t, "Ana", ap.ClientName)
	assert.Equal(t, "Mechas", ap.ServiceName)
	assert.Equal(t, 120, ap.Duration)
	assert.Equal(t, 250.0, ap.Price)

	require.Len(t, f.auditor.events, 1)
	assert.Equal(t, "appointment_created", f.auditor.events[0].Action)
}

func TestCreateAppointment_Conflict(t *testing.T) {
	f := newFixture(t)
	f.book(t, f.mechas.ID, "2025-01-07", "09:00")

	_, err := f.create(lock.NewLocalLocker(time.Second)).Execute(context.Background(), CreateAppointmentInput{
		ClientID:  f.client.ID,
		ServiceID: f.penteado.ID,
		Date:      "2025-01-07",
		Time:      "10:30",
	})

	be := requireCode(t, err, "time_conflict")
	assert.Equal(t, "Conflito com agendamento de Ana às 09:00", be.Reason)
}

func TestCreateAppointment_ClosingTimeExceeded(t *testing.T) {
	f := newFixture(t)

	_, err := f.create(lock.NewLocalLocker(time.Second)).Execute(context.Background(), CreateAppointmentInput{
		ClientID:  f.client.ID,
		ServiceID: f.mechas.ID,
		Date:      "2025-01-07",
		Time:      "17:00",
	})

	be := requireCode(t, err, "closing_time_exceeded")
	assert.Contains(t, be.Reason, "18:00")
}

func TestCreateAppointment_Rejections(t *testing.T) {
	f := newFixture(t)

	inactive := models.Service{Name: "Escova Lisa ou Modelada", DurationMin: 60, Price: 60}
	require.NoError(t, f.db.Create(&inactive).Error)
	require.NoError(t, f.db.Model(&inactive).Update("active", false).Error)

	tests := []struct {
		name string
		in   CreateAppointmentInput
		code string
	}{
		{"sunday", CreateAppointmentInput{ClientID: f.client.ID, ServiceID: f.penteado.ID, Date: "2025-01-12", Time: "09:00"}, "salon_closed"},
		{"holiday", CreateAppointmentInput{ClientID: f.client.ID, ServiceID: f.penteado.ID, Date: "2025-04-21", Time: "09:00"}, "salon_closed"},
		{"lunch", CreateAppointmentInput{ClientID: f.client.ID, ServiceID: f.penteado.ID, Date: "2025-01-07", Time: "12:30"}, "outside_business_hours"},
		{"before opening", CreateAppointmentInput{ClientID: f.client.ID, ServiceID: f.penteado.ID, Date: "2025-01-07", Time: "07:00"}, "outside_business_hours"},
		{"off grid", CreateAppointmentInput{ClientID: f.client.ID, ServiceID: f.penteado.ID, Date: "2025-01-07", Time: "09:15"}, "outside_business_hours"},
		{"past", CreateAppointmentInput{ClientID: f.client.ID, ServiceID: f.penteado.ID, Date: "2025-01-03", Time: "09:00"}, "in_the_past"},
		{"bad date", CreateAppointmentInput{ClientID: f.client.ID, ServiceID: f.penteado.ID, Date: "07/01/2025", Time: "09:00"}, "invalid_date_or_time"},
		{"unknown client", CreateAppointmentInput{ClientID: 999, ServiceID: f.penteado.ID, Date: "2025-01-07", Time: "09:00"}, "client_not_found"},
		{"inactive service", CreateAppointmentInput{ClientID: f.client.ID, ServiceID: inactive.ID, Date: "2025-01-07", Time: "09:00"}, "service_not_found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.create(lock.NewLocalLocker(time.Second)).Execute(context.Background(), tt.in)
			requireCode(t, err, tt.code)
		})
	}

	assert.Empty(t, f.auditor.events)
}

func TestCreateAppointment_LockBusy(t *testing.T) {
	f := newFixture(t)

	_, err := f.create(busyLocker{}).Execute(context.Background(), CreateAppointmentInput{
		ClientID:  f.client.ID,
		ServiceID: f.penteado.ID,
		Date:      "2025-01-07",
		Time:      "09:00",
	})

	requireCode(t, err, "booking_in_progress")
}

func TestCreateAppointment_ConcurrentSameSlot(t *testing.T) {
	lockers := map[string]Locker{
		"local lock": lock.NewLocalLocker(5 * time.Second),
		"no lock":    openLocker{},
	}

	for name, locker := range lockers {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			uc := f.create(locker)

			errs := concurrently(4, func() error {
				_, err := uc.Execute(context.Background(), CreateAppointmentInput{
					ClientID:  f.client.ID,
					ServiceID: f.mechas.ID,
					Date:      "2025-01-07",
					Time:      "09:00",
				})
				return err
			})

			assert.Equal(t, 1, countSuccess(t, errs, "time_conflict"))

			var stored int64
			require.NoError(t, f.db.Model(&models.Appointment{}).
				Where("date = ?", "2025-01-07").
				Count(&stored).Error)
			assert.Equal(t, int64(1), stored)
		})
	}
}

func TestConfirmAndCancel(t *testing.T) {
	f := newFixture(t)
	ap := f.book(t, f.mechas.ID, "2025-01-07", "09:00")
	ctx := context.Background()

	confirm := NewConfirmAppointment(f.repo, f.auditor, tz)
	cancel := NewCancelAppointment(f.repo, f.auditor, tz)

	confirmed, err := confirm.Execute(ctx, nil, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, "confirmado", confirmed.Status)
	assert.NotNil(t, confirmed.ConfirmedAt)

	_, err = confirm.Execute(ctx, nil, ap.ID)
	requireCode(t, err, "invalid_state")

	cancelled, err := cancel.Execute(ctx, nil, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, "cancelado", cancelled.Status)

	_, err = cancel.Execute(ctx, nil, ap.ID)
	requireCode(t, err, "invalid_state")

	_, err = cancel.Execute(ctx, nil, 999)
	requireCode(t, err, "appointment_not_found")

	// horário liberado após o cancelamento
	f.book(t, f.penteado.ID, "2025-01-07", "09:30")
}

func TestCompleteAppointment(t *testing.T) {
	f := newFixture(t)
	ap := f.book(t, f.mechas.ID, "2025-01-07", "09:00")

	uc := NewCompleteAppointment(f.repo, f.scheduler, f.auditor, nil, zap.NewNop(), tz)
	doneAt := time.Date(2025, 1, 7, 11, 0, 0, 0, timezone.Location(tz))
	uc.now = func() time.Time { return doneAt }

	out, err := uc.Execute(context.Background(), nil, ap.ID)
	require.NoError(t, err)

	assert.Equal(t, "realizado", out.Appointment.Status)
	assert.Equal(t, 1, out.Client.VisitCount)
	assert.Equal(t, 250.0, out.Client.TotalSpent)

	require.Len(t, out.Reminders, 1)
	assert.Equal(t, "manutenção", out.Reminders[0].Type)
	assert.True(t, out.Reminders[0].ScheduledDate.Equal(doneAt.AddDate(0, 0, 15)))
	assert.Contains(t, out.Reminders[0].Message, "química")

	var stored models.Client
	require.NoError(t, f.db.First(&stored, f.client.ID).Error)
	assert.Equal(t, 1, stored.VisitCount)
	require.NotNil(t, stored.LastVisit)

	var count int64
	require.NoError(t, f.db.Model(&models.Reminder{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	_, err = uc.Execute(context.Background(), nil, ap.ID)
	requireCode(t, err, "invalid_state")
}

func TestCompleteAppointment_Milestone(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.db.Model(&f.client).Update("visit_count", 9).Error)

	ap := f.book(t, f.penteado.ID, "2025-01-07", "14:00")

	uc := NewCompleteAppointment(f.repo, f.scheduler, f.auditor, nil, zap.NewNop(), tz)
	uc.now = f.clock

	out, err := uc.Execute(context.Background(), nil, ap.ID)
	require.NoError(t, err)

	assert.Equal(t, 10, out.Client.VisitCount)
	require.Len(t, out.Reminders, 2)
	assert.Equal(t, "milestone", out.Reminders[1].Type)
	assert.Contains(t, out.Reminders[1].Message, "10 atendimentos")
}

func TestCompleteAppointment_Concurrent(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.db.Model(&f.client).Update("visit_count", 9).Error)

	ap := f.book(t, f.penteado.ID, "2025-01-07", "14:00")

	const callers = 2
	gate := &sync.WaitGroup{}
	gate.Add(callers)
	repo := gatedRepo{AppointmentGormRepository: f.repo, gate: gate}

	uc := NewCompleteAppointment(repo, f.scheduler, f.auditor, nil, zap.NewNop(), tz)
	uc.now = f.clock

	errs := concurrently(callers, func() error {
		_, err := uc.Execute(context.Background(), nil, ap.ID)
		return err
	})

	assert.Equal(t, 1, countSuccess(t, errs, "invalid_state"))

	var stored models.Client
	require.NoError(t, f.db.First(&stored, f.client.ID).Error)
	assert.Equal(t, 10, stored.VisitCount)
	assert.Equal(t, 80.0, stored.TotalSpent)

	var reminders, milestones int64
	require.NoError(t, f.db.Model(&models.Reminder{}).Count(&reminders).Error)
	require.NoError(t, f.db.Model(&models.Reminder{}).Where("type = ?", "milestone").Count(&milestones).Error)
	assert.Equal(t, int64(2), reminders)
	assert.Equal(t, int64(1), milestones)
}

func TestCompleteAppointment_ServiceRecreated(t *testing.T) {
	f := newFixture(t)

	spa := models.Service{Name: "Spa Capilar", DurationMin: 60, Price: 120, ReminderCategory: "outros"}
	require.NoError(t, f.db.Create(&spa).Error)

	ap := f.book(t, spa.ID, "2025-01-07", "10:00")

	// removido e recadastrado com outro id
	require.NoError(t, f.db.Delete(&spa).Error)
	require.NoError(t, f.db.Create(&models.Service{Name: "Spa Capilar", DurationMin: 60, Price: 130, ReminderCategory: "outros"}).Error)

	uc := NewCompleteAppointment(f.repo, f.scheduler, f.auditor, nil, zap.NewNop(), tz)
	uc.now = f.clock

	out, err := uc.Execute(context.Background(), nil, ap.ID)
	require.NoError(t, err)

	require.Len(t, out.Reminders, 1)
	assert.Contains(t, out.Reminders[0].Message, "repetir aquele Spa Capilar")
}

func TestCancel_RacingCompletion(t *testing.T) {
	f := newFixture(t)
	ap := f.book(t, f.mechas.ID, "2025-01-07", "09:00")

	const callers = 2
	gate := &sync.WaitGroup{}
	gate.Add(callers)
	repo := gatedRepo{AppointmentGormRepository: f.repo, gate: gate}

	complete := NewCompleteAppointment(repo, f.scheduler, f.auditor, nil, zap.NewNop(), tz)
	complete.now = f.clock
	cancel := NewCancelAppointment(repo, f.auditor, tz)
	cancel.now = f.clock

	var completeErr, cancelErr error
	var wg sync.WaitGroup
	wg.Add(callers)
	go func() {
		defer wg.Done()
		_, completeErr = complete.Execute(context.Background(), nil, ap.ID)
	}()
	go func() {
		defer wg.Done()
		_, cancelErr = cancel.Execute(context.Background(), nil, ap.ID)
	}()
	wg.Wait()

	// exatamente um vence; o status gravado é o do vencedor
	require.True(t, (completeErr == nil) != (cancelErr == nil), "complete=%v cancel=%v", completeErr, cancelErr)

	stored, err := f.repo.GetAppointment(context.Background(), ap.ID)
	require.NoError(t, err)

	var client models.Client
	require.NoError(t, f.db.First(&client, f.client.ID).Error)

	if completeErr == nil {
		requireCode(t, cancelErr, "invalid_state")
		assert.Equal(t, "realizado", stored.Status)
		assert.Equal(t, 1, client.VisitCount)
	} else {
		requireCode(t, completeErr, "invalid_state")
		assert.Equal(t, "cancelado", stored.Status)
		assert.Equal(t, 0, client.VisitCount)
	}
}

func TestGetAvailability(t *testing.T) {
	f := newFixture(t)
	f.book(t, f.mechas.ID, "2025-01-07", "09:00")
	ctx := context.Background()

	uc := NewGetAvailability(f.repo, f.policy, tz)

	day, err := uc.Execute(ctx, "2025-01-07", f.penteado.ID)
	require.NoError(t, err)
	assert.True(t, day.Open)
	assert.Equal(t, "18:00", day.ClosingTime)
	assert.Contains(t, day.Slots, "08:30")
	assert.Contains(t, day.Slots, "11:00")
	for _, taken := range []string{"09:00", "09:30", "10:00", "10:30"} {
		assert.NotContains(t, day.Slots, taken)
	}

	long, err := uc.Execute(ctx, "2025-01-07", f.mechas.ID)
	require.NoError(t, err)
	assert.NotContains(t, long.Slots, "08:00")
	assert.NotContains(t, long.Slots, "16:30")
	assert.Contains(t, long.Slots, "16:00")

	closed, err := uc.Execute(ctx, "2025-01-05", f.penteado.ID)
	require.NoError(t, err)
	assert.False(t, closed.Open)
	assert.True(t, closed.Sunday)
	assert.Empty(t, closed.Slots)

	_, err = uc.Execute(ctx, "2025-01-07", 999)
	requireCode(t, err, "service_not_found")
}

func TestGetCalendarDay(t *testing.T) {
	f := newFixture(t)
	uc := NewGetCalendarDay(f.policy, tz)

	day, err := uc.Execute("2025-01-04")
	require.NoError(t, err)
	assert.Equal(t, "sábado", day.Weekday)
	assert.Equal(t, "20:00", day.ClosingTime)
	assert.Equal(t, "19:30", day.Slots[len(day.Slots)-1])

	holiday, err := uc.Execute("2025-01-01")
	require.NoError(t, err)
	assert.False(t, holiday.Open)
	assert.NotEmpty(t, holiday.Holiday)

	_, err = uc.Execute("2025-13-01")
	requireCode(t, err, "invalid_date")
}

func TestCheckAvailability(t *testing.T) {
	f := newFixture(t)
	f.book(t, f.mechas.ID, "2025-01-07", "09:00")

	uc := NewCheckAvailability(f.repo, f.policy, tz)

	res, err := uc.Execute(context.Background(), "2025-01-07", "10:00", 60)
	require.NoError(t, err)
	assert.False(t, res.Available)
	assert.Equal(t, schedule.ViolationConflict, res.Violation)

	res, err = uc.Execute(context.Background(), "2025-01-07", "11:00", 60)
	require.NoError(t, err)
	assert.True(t, res.Available)

	_, err = uc.Execute(context.Background(), "2025-01-07", "11:00", 0)
	requireCode(t, err, "invalid_duration")
}

func TestListAppointments(t *testing.T) {
	f := newFixture(t)
	f.book(t, f.penteado.ID, "2025-01-08", "14:00")
	f.book(t, f.mechas.ID, "2025-01-07", "09:00")
	f.book(t, f.penteado.ID, "2025-02-03", "09:00")
	ctx := context.Background()

	byDate, err := NewListAppointmentsByDate(f.repo).Execute(ctx, "2025-01-07")
	require.NoError(t, err)
	require.Len(t, byDate, 1)
	assert.Equal(t, "11:00", byDate[0].EndTime)

	byMonth, err := NewListAppointmentsByMonth(f.repo).Execute(ctx, 2025, 1)
	require.NoError(t, err)
	require.Len(t, byMonth, 2)
	assert.Equal(t, "2025-01-07", byMonth[0].Date)
	assert.Equal(t, "2025-01-08", byMonth[1].Date)

	_, err = NewListAppointmentsByMonth(f.repo).Execute(ctx, 2025, 13)
	requireCode(t, err, "invalid_period")
}
