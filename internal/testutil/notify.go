package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erp/ausyexpo/internal/infrastructure/api"
	"github.com/erp/ausyexpo/internal/infrastructure/auth"
)

// Notifications records success and failure messages in order.
type Notifications struct {
	mu        sync.Mutex
	successes []string
	failures  []string
}

func (n *Notifications) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func (n *Notifications) Failure(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failures = append(n.failures, msg)
}

// Successes returns the success messages seen so far.
func (n *Notifications) Successes() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.successes...)
}

// Failures returns the failure messages seen so far.
func (n *Notifications) Failures() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.failures...)
}

// NewClient returns an API client for the backend carrying token (may be empty).
func (b *Backend) NewClient(t testing.TB, token string) *api.Client {
	t.Helper()
	client, err := api.NewClient(api.Options{
		BaseURL: b.URL(),
		Session: auth.NewSession(token),
	})
	require.NoError(t, err)
	return client
}
