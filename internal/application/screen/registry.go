package screen

import (
	"sort"

	"go.uber.org/zap"

	"github.com/erp/ausyexpo/internal/application/listing"
)

// Registry holds every entity screen in menu order.
type Registry struct {
	screens []Screen
	byKey   map[string]Screen
}

// NewRegistry builds all screens over one API client. Reference lists are
// fetched lazily and shared between screens.
func NewRegistry(env Env) *Registry {
	if env.Notifier == nil {
		env.Notifier = listing.NopNotifier{}
	}
	if env.Logger == nil {
		env.Logger = zap.NewNop()
	}
	refs := newRefLoader(env.Client, env.Logger)

	screens := []Screen{
		newEntityScreen(branchesConfig(), env, refs),
		newEntityScreen(usersConfig(), env, refs),
		newEntityScreen(employeesConfig(), env, refs),
		newEntityScreen(departmentsConfig(), env, refs),
		newEntityScreen(stockConfig(), env, refs),
		newEntityScreen(suppliesConfig(), env, refs),
		newEntityScreen(transportationConfig(), env, refs),
		newEntityScreen(ordersConfig(), env, refs),
		newEntityScreen(agreementsConfig(), env, refs),
		newEntityScreen(commandsConfig(), env, refs),
	}

	r := &Registry{screens: screens, byKey: make(map[string]Screen, len(screens))}
	for _, s := range screens {
		r.byKey[s.Key()] = s
	}
	return r
}

// Get returns the screen registered under key.
func (r *Registry) Get(key string) (Screen, bool) {
	s, ok := r.byKey[key]
	return s, ok
}

// All returns the screens in menu order.
func (r *Registry) All() []Screen {
	return r.screens
}

// Keys returns the screen keys sorted alphabetically.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.byKey))
	for k := range r.byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
