package gui

import (
	"context"

	"github.com/appengine-ltd/wildlands/internal/console"
)

// commandQueue runs typed console lines off the render thread; a long
// "wait" must not freeze the window.
type commandQueue struct {
	lines   chan string
	results chan console.Result
}

func newCommandQueue(size int) *commandQueue {
	if size < 1 {
		size = 16
	}
	return &commandQueue{
		lines:   make(chan string, size),
		results: make(chan console.Result, size),
	}
}

func (q *commandQueue) Enqueue(line string) bool {
	if q == nil {
		return false
	}
	select {
	case q.lines <- line:
		return true
	default:
		return false
	}
}

// Run executes queued lines until ctx is done.
func (q *commandQueue) Run(ctx context.Context, c *console.Console) {
	for {
		select {
		case <-ctx.Done():
			return
		case line := <-q.lines:
			res := c.Execute(ctx, line)
			select {
			case q.results <- res:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (q *commandQueue) Poll() (console.Result, bool) {
	if q == nil {
		return console.Result{}, false
	}
	select {
	case res := <-q.results:
		return res, true
	default:
		return console.Result{}, false
	}
}
