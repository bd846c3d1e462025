package cli

import (
	"fmt"
	"io"
	"sync"
)

// notifier prints list notifications on stderr and remembers whether a
// failure was already reported, so the final error is not printed twice.
type notifier struct {
	mu       sync.Mutex
	w        io.Writer
	failures int
}

func (n *notifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintln(n.w, msg)
}

func (n *notifier) Failure(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failures++
	fmt.Fprintln(n.w, "Error: "+msg)
}

func (n *notifier) reported() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.failures > 0
}
