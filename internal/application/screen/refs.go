package screen

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/erp/ausyexpo/internal/application/listing"
	"github.com/erp/ausyexpo/internal/domain/organization"
	"github.com/erp/ausyexpo/internal/domain/shared"
	"github.com/erp/ausyexpo/internal/infrastructure/api"
	"github.com/erp/ausyexpo/internal/infrastructure/logger"
)

// Reference lists a screen may join against.
const (
	RefBranches    = "branches"
	RefDepartments = "departments"
	RefUsers       = "users"
	RefManagers    = "managers"
)

// Refs holds display-name lookups for referenced records.
type Refs struct {
	Branches    listing.Lookup
	Departments listing.Lookup
	Users       listing.Lookup
	Managers    listing.Lookup
}

func (r *Refs) lookup(kind string) listing.Lookup {
	switch kind {
	case RefBranches:
		return r.Branches
	case RefDepartments:
		return r.Departments
	case RefUsers:
		return r.Users
	case RefManagers:
		return r.Managers
	}
	return nil
}

// Name resolves ref through the lookup, then the name carried by the
// reference itself, then fallback.
func Name(l listing.Lookup, ref *shared.Ref, fallback string) string {
	if ref == nil {
		return fallback
	}
	if name := l.Name(ref.ID, ""); name != "" {
		return name
	}
	if ref.Name != "" {
		return ref.Name
	}
	return fallback
}

// refLoader holds the reference lookups shared by the screens of a
// registry. Screens refresh their references on every Load; List and Fields
// only fetch a list that has never been fetched successfully. A failed fetch
// empties the lookup so joins render as Unknown until the next attempt.
type refLoader struct {
	client *api.Client
	log    *zap.Logger

	mu     sync.Mutex
	loaded map[string]bool
	refs   Refs
}

func newRefLoader(client *api.Client, log *zap.Logger) *refLoader {
	return &refLoader{
		client: client,
		log:    log,
		loaded: map[string]bool{},
		refs: Refs{
			Branches:    listing.Lookup{},
			Departments: listing.Lookup{},
			Users:       listing.Lookup{},
			Managers:    listing.Lookup{},
		},
	}
}

// load returns the lookups, fetching the kinds not fetched yet.
func (l *refLoader) load(ctx context.Context, kinds ...string) *Refs {
	return l.get(ctx, false, kinds)
}

// refresh refetches kinds unconditionally.
func (l *refLoader) refresh(ctx context.Context, kinds ...string) *Refs {
	return l.get(ctx, true, kinds)
}

func (l *refLoader) get(ctx context.Context, force bool, kinds []string) *Refs {
	l.mu.Lock()
	defer l.mu.Unlock()

	done := make(map[string]bool, len(kinds))
	for _, kind := range kinds {
		src := source(kind)
		if done[src] || (!force && l.loaded[src]) {
			continue
		}
		done[src] = true
		if err := l.fetch(ctx, src); err != nil {
			logger.L(ctx).Warn("reference list unavailable",
				zap.String("reference", kind), zap.Int("status", api.StatusCode(err)), zap.Error(err))
			l.reset(src)
			delete(l.loaded, src)
			continue
		}
		l.loaded[src] = true
	}
	refs := l.refs
	return &refs
}

// source maps a reference kind to the collection it is built from.
func source(kind string) string {
	if kind == RefManagers {
		return RefUsers
	}
	return kind
}

func (l *refLoader) reset(src string) {
	switch src {
	case RefBranches:
		l.refs.Branches = listing.Lookup{}
	case RefDepartments:
		l.refs.Departments = listing.Lookup{}
	case RefUsers:
		l.refs.Users = listing.Lookup{}
		l.refs.Managers = listing.Lookup{}
	}
}

func (l *refLoader) fetch(ctx context.Context, kind string) error {
	switch kind {
	case RefBranches:
		items, err := api.NewRepository[organization.Branch](l.client, "branches").FindAll(ctx)
		if err != nil {
			return err
		}
		l.refs.Branches = listing.NewLookup(items, func(b organization.Branch) string { return b.Name })
	case RefDepartments:
		items, err := api.NewRepository[organization.Department](l.client, "departments").FindAll(ctx)
		if err != nil {
			return err
		}
		l.refs.Departments = listing.NewLookup(items, func(d organization.Department) string { return d.Name })
	case RefUsers:
		users, err := api.NewRepository[organization.User](l.client, "users").FindAll(ctx)
		if err != nil {
			return err
		}
		managers := make([]organization.User, 0, len(users))
		for _, u := range users {
			if u.CanManageAgreements() {
				managers = append(managers, u)
			}
		}
		l.refs.Users = listing.NewLookup(users, organization.User.FullName)
		l.refs.Managers = listing.NewLookup(managers, organization.User.FullName)
	}
	return nil
}
