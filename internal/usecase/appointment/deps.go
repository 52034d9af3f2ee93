package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// Auditor recebe eventos de auditoria sem bloquear o fluxo.
type Auditor interface {
	Dispatch(ev audit.Event)
}

// Locker serializa reservas concorrentes para a mesma chave.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

type clock func() time.Time

func salonClock(tz string) clock {
	return func() time.Time {
		return timezone.NowIn(tz)
	}
}
