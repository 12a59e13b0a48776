// Package watch re-runs a callback when watched source files change.
package watch

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Op indicates a change operation in the filesystem.
type Op uint32

const (
	OpCreate Op = 1 << iota
	OpWrite
	OpRemove
	OpRename
	OpChmod
)

func (op Op) String() string {
	var parts []string
	for _, n := range []struct {
		op   Op
		name string
	}{
		{OpCreate, "CREATE"},
		{OpWrite, "WRITE"},
		{OpRemove, "REMOVE"},
		{OpRename, "RENAME"},
		{OpChmod, "CHMOD"},
	} {
		if op&n.op != 0 {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "NONE"
	}
	return strings.Join(parts, "|")
}

// Event is a single change notification.
type Event struct {
	Path string
	Op   Op
	Time time.Time
}

// Watcher delivers file change events.
type Watcher interface {
	Events() <-chan Event
	Errors() <-chan error
	Add(name string) error
	Close() error
}

// Relevant reports whether ev may have changed a file's contents.
func Relevant(ev Event) bool {
	return ev.Op&(OpCreate|OpWrite|OpRename) != 0
}

// Run collects relevant events from w and calls fn with the sorted, deduped
// set of changed paths once no event arrived for debounce. It returns nil
// when ctx is done or w's event channel is closed, and the first watcher
// error otherwise.
func Run(ctx context.Context, w Watcher, debounce time.Duration, fn func(paths []string)) error {
	pending := make(map[string]struct{})

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events():
			if !ok {
				return nil
			}
			if !Relevant(ev) {
				continue
			}
			pending[ev.Path] = struct{}{}

			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(debounce)
			}
			fire = timer.C

		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			return fmt.Errorf("watch: %w", err)

		case <-fire:
			fire = nil
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			sort.Strings(paths)
			pending = make(map[string]struct{})
			fn(paths)
		}
	}
}
