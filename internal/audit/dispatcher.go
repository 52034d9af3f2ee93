package audit

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

type Event struct {
	UserID   *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

type Dispatcher struct {
	logger *Logger
	log    *zap.Logger
	queue  chan Event
	wg     sync.WaitGroup
	once   sync.Once
}

func NewDispatcher(logger *Logger, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		log:    log.Named("audit"),
		queue:  make(chan Event, 100),
	}

	d.wg.Add(1)
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for ev := range d.queue {
		if err := d.logger.Log(context.Background(), ev); err != nil {
			d.log.Warn("audit write failed", zap.String("action", ev.Action), zap.Error(err))
		}
	}
}

// Dispatch nunca bloqueia: com a fila cheia o evento é descartado.
func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}

// Close drena a fila e espera o worker terminar.
func (d *Dispatcher) Close() {
	d.once.Do(func() {
		close(d.queue)
	})
	d.wg.Wait()
}
