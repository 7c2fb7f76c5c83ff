// Package task runs detached background work.
//
// Tasks are fire-and-forget: nobody waits for them, they are not ordered
// relative to each other or to later commands, and they cannot be cancelled.
// Process exit abandons whatever is still running.
package task

import (
	"fmt"
	"runtime/debug"
	"sync/atomic"

	log "log/slog"
)

var running atomic.Int64

// Go starts fn on its own goroutine. A panic inside fn is logged and dropped.
func Go(name string, fn func()) {
	running.Add(1)
	go func() {
		defer running.Add(-1)
		defer func() {
			if r := recover(); r != nil {
				log.Error("Background task panicked", "task", name, "panic", fmt.Sprint(r), "stack", string(debug.Stack()))
			}
		}()
		fn()
	}()
}

// Running reports how many tasks have not returned yet.
func Running() int64 {
	return running.Load()
}
