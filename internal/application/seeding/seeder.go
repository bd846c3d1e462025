// Package seeding creates plausible demo records through the same form path
// the console uses, so generated data passes the client-side rules and the
// backend sees ordinary create requests.
package seeding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/erp/ausyexpo/internal/application/screen"
	"github.com/erp/ausyexpo/internal/domain/shared"
)

// ErrNoReference is returned when a required reference field has nothing to
// point at, e.g. departments before any branch exists.
var ErrNoReference = errors.New("no records available for required reference")

// Options configures a Seeder.
type Options struct {
	// Rate is the number of create requests per second; 0 disables limiting.
	Rate  float64
	Burst int
	// Seed makes generated values reproducible when non-zero.
	Seed   uint64
	Logger *zap.Logger
}

// Result summarizes a seeding run.
type Result struct {
	Screen  string
	Created int
	Failed  int
	Elapsed time.Duration
	Errors  []string
}

// Seeder generates records for screens.
type Seeder struct {
	faker   *gofakeit.Faker
	limiter *rate.Limiter
	log     *zap.Logger
	now     func() time.Time
}

// New returns a Seeder. Burst defaults to max(1, int(rate)).
func New(opts Options) *Seeder {
	limit := rate.Inf
	if opts.Rate > 0 {
		limit = rate.Limit(opts.Rate)
	}
	burst := opts.Burst
	if burst <= 0 {
		burst = max(1, int(opts.Rate))
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Seeder{
		faker:   gofakeit.New(opts.Seed),
		limiter: rate.NewLimiter(limit, burst),
		log:     log.Named("seed"),
		now:     time.Now,
	}
}

// Values generates one set of form values for s. Reference fields pick one
// of the offered choices.
func (sd *Seeder) Values(ctx context.Context, s screen.Screen) (map[string]string, error) {
	fields, err := s.Fields(ctx)
	if err != nil {
		return nil, err
	}
	return sd.values(s.Key(), fields)
}

// Seed creates count records on s. A failed create is counted and the run
// continues; only context cancellation or a missing required reference stops
// it early.
func (sd *Seeder) Seed(ctx context.Context, s screen.Screen, count int) (*Result, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: count must be positive", shared.ErrInvalidInput)
	}
	fields, err := s.Fields(ctx)
	if err != nil {
		return nil, err
	}

	res := &Result{Screen: s.Key()}
	start := sd.now()
	for i := 0; i < count; i++ {
		if err := sd.limiter.Wait(ctx); err != nil {
			res.Elapsed = sd.now().Sub(start)
			return res, err
		}
		values, err := sd.values(s.Key(), fields)
		if err != nil {
			res.Elapsed = sd.now().Sub(start)
			return res, err
		}
		if _, err := s.Create(ctx, values); err != nil {
			res.Failed++
			res.Errors = append(res.Errors, err.Error())
			sd.log.Warn("seed record rejected", zap.String("screen", s.Key()), zap.Int("index", i), zap.Error(err))
			continue
		}
		res.Created++
	}
	res.Elapsed = sd.now().Sub(start)
	sd.log.Info("seeding finished",
		zap.String("screen", s.Key()),
		zap.Int("created", res.Created),
		zap.Int("failed", res.Failed),
		zap.Duration("elapsed", res.Elapsed),
	)
	return res, nil
}
