// Package events carries advisory change notifications: every successful
// mutation announces its table, and subscribers refetch the whole list.
// Notifications travel through Postgres NOTIFY so that every running
// instance sees writes made by any of them.
package events

import (
	"context"
	"sync"
)

// Channel prefix for pg_notify, to keep out of the way of other users of
// the database.
const channelPrefix = "esep_"

// Tables that emit change events.
const (
	TableRegistrations = "registrations"
	TablePanchayaths   = "panchayaths"
	TableCategories    = "categories"
	TableAdminUsers    = "admin_users"
)

// Tables lists every channel the listener subscribes to.
var Tables = []string{TableRegistrations, TablePanchayaths, TableCategories, TableAdminUsers}

// Publisher is the side repositories and handlers see.
type Publisher interface {
	Publish(ctx context.Context, table string) error
}

type subscriber struct {
	tables map[string]struct{}
	ch     chan string
}

// Bus fans incoming table notifications out to in-process subscribers.
// Publishing goes through Postgres (see Notifier); the listener feeds
// received notifications back in via Dispatch.
type Bus struct {
	mu   sync.Mutex
	subs map[int]subscriber
	next int
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int]subscriber)}
}

// Subscribe returns a channel receiving table names as they change, and a
// cancel function. An empty tables list subscribes to everything.
func (b *Bus) Subscribe(tables ...string) (<-chan string, func()) {
	sub := subscriber{ch: make(chan string, 8)}
	if len(tables) > 0 {
		sub.tables = make(map[string]struct{}, len(tables))
		for _, t := range tables {
			sub.tables[t] = struct{}{}
		}
	}

	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = sub
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if s, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(s.ch)
		}
		b.mu.Unlock()
	}
	return sub.ch, cancel
}

// Dispatch delivers a table change to every interested subscriber. Slow
// subscribers are skipped rather than blocked on; a dropped notification
// only delays the next refetch.
func (b *Bus) Dispatch(table string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, s := range b.subs {
		if s.tables != nil {
			if _, ok := s.tables[table]; !ok {
				continue
			}
		}
		select {
		case s.ch <- table:
		default:
		}
	}
}
