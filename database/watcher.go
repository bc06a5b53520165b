package database

import (
	"context"
	"log/slog"
	"sync"
)

// Notifier is an observer registry keyed by table name. Every write path in
// the repository reports the tables it touched; each live subscription
// re-runs its query whenever one of its tables changes.
type Notifier struct {
	mu   sync.Mutex
	subs map[int]*subscription
	next int
}

type subscription struct {
	tables map[string]struct{}
	// Buffered size 1: a pending wake-up is enough, intermediate
	// notifications coalesce.
	signal chan struct{}
}

func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]*subscription)}
}

// Notify wakes every subscription watching any of the given tables.
func (n *Notifier) Notify(tables ...string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, sub := range n.subs {
		for _, table := range tables {
			if _, ok := sub.tables[table]; ok {
				select {
				case sub.signal <- struct{}{}:
				default:
				}
				break
			}
		}
	}
}

func (n *Notifier) subscribe(tables []string) (int, chan struct{}) {
	sub := &subscription{
		tables: make(map[string]struct{}, len(tables)),
		signal: make(chan struct{}, 1),
	}
	for _, table := range tables {
		sub.tables[table] = struct{}{}
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	id := n.next
	n.next++
	n.subs[id] = sub
	return id, sub.signal
}

func (n *Notifier) unsubscribe(id int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.subs, id)
}

// observe runs query once immediately, then again after every change to the
// watched tables, sending each result on the returned channel. Delivery is
// latest-wins: the channel is buffered size 1 and a stale unread result is
// replaced, so a slow consumer always sees at least the newest state. The
// subscription ends when ctx is cancelled; the channel is closed then.
func observe[T any](ctx context.Context, n *Notifier, tables []string, query func(context.Context) (T, error)) <-chan T {
	out := make(chan T, 1)
	id, signal := n.subscribe(tables)

	go func() {
		defer close(out)
		defer n.unsubscribe(id)

		emit := func() {
			result, err := query(ctx)
			if err != nil {
				if ctx.Err() == nil {
					slog.Error("live query failed", "tables", tables, "error", err)
				}
				return
			}
			// Single producer: drain any unread stale result, then send.
			select {
			case out <- result:
			default:
				select {
				case <-out:
				default:
				}
				out <- result
			}
		}

		emit()
		for {
			select {
			case <-ctx.Done():
				return
			case <-signal:
				emit()
			}
		}
	}()

	return out
}
