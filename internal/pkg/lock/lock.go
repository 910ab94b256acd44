// Package lock serializes state transitions on a single record.
package lock

import (
	"context"
	"sync"
)

// Locker acquires a named lock. The returned unlock func is safe to call more
// than once.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// Key helpers keep lock names identical across services.
func AttendanceKey(attendanceID string) string { return "attendance:" + attendanceID }
func UserClockInKey(userID string) string      { return "attendance:user:" + userID }
func ShiftKey(shiftID string) string           { return "shift:" + shiftID }
func EmployeeShiftsKey(employeeID string) string {
	return "employee:" + employeeID + ":shifts"
}

type entry struct {
	ch   chan struct{}
	refs int
}

// KeyedMutex is an in-process Locker. Entries are dropped once nobody holds or
// waits for them.
type KeyedMutex struct {
	mu      sync.Mutex
	entries map[string]*entry
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{entries: make(map[string]*entry)}
}

func (k *KeyedMutex) Lock(ctx context.Context, key string) (func(), error) {
	k.mu.Lock()
	e, ok := k.entries[key]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		k.entries[key] = e
	}
	e.refs++
	k.mu.Unlock()

	select {
	case e.ch <- struct{}{}:
	case <-ctx.Done():
		k.release(key, e)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.ch
			k.release(key, e)
		})
	}, nil
}

func (k *KeyedMutex) release(key string, e *entry) {
	k.mu.Lock()
	defer k.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(k.entries, key)
	}
}

// size reports the number of live entries.
func (k *KeyedMutex) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.entries)
}
