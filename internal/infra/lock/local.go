package lock

import (
	"context"
	"sync"
	"time"
)

// LocalLocker serializa reservas do mesmo dia dentro de um único processo.
// Usado quando o Redis não está configurado.
type LocalLocker struct {
	mu    sync.Mutex
	slots map[string]*localSlot
	wait  time.Duration
}

type localSlot struct {
	ch   chan struct{}
	refs int
}

func NewLocalLocker(wait time.Duration) *LocalLocker {
	return &LocalLocker{
		slots: make(map[string]*localSlot),
		wait:  wait,
	}
}

// Acquire espera a vez da chave até o tempo de espera esgotar.
func (l *LocalLocker) Acquire(ctx context.Context, key string) (func(), error) {
	slot := l.ref(key)

	timer := time.NewTimer(l.wait)
	defer timer.Stop()

	select {
	case slot.ch <- struct{}{}:
	case <-timer.C:
		l.unref(key)
		return nil, ErrBusy
	case <-ctx.Done():
		l.unref(key)
		return nil, ctx.Err()
	}

	var once sync.Once
	release := func() {
		once.Do(func() {
			<-slot.ch
			l.unref(key)
		})
	}

	return release, nil
}

func (l *LocalLocker) ref(key string) *localSlot {
	l.mu.Lock()
	defer l.mu.Unlock()

	slot, ok := l.slots[key]
	if !ok {
		slot = &localSlot{ch: make(chan struct{}, 1)}
		l.slots[key] = slot
	}
	slot.refs++
	return slot
}

// unref descarta a chave quando ninguém mais a usa ou espera por ela.
func (l *LocalLocker) unref(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	slot := l.slots[key]
	slot.refs--
	if slot.refs == 0 {
		delete(l.slots, key)
	}
}
