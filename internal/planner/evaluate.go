package planner

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/skyline93/seekmap/internal/layout"
	"github.com/skyline93/seekmap/internal/report"
)

// Options controls an evaluation.
type Options struct {
	// Start is the first location of every relocated block.
	Start uint64
	// Workers bounds the number of strategies evaluated at the same time.
	Workers int
	// Verify runs a full index check after each relocation.
	Verify bool
}

// Apply runs s against t in place and reports the seek distance before and
// after the relocation.
func Apply(t *layout.Trace, s Strategy, opts Options) (report.Result, error) {
	res := report.Result{
		Strategy: s.Name(),
		Start:    opts.Start,
		Before:   t.TotalSeekDistance(),
	}

	addresses, err := s.Plan(t)
	if err != nil {
		return report.Result{}, errors.Wrapf(err, "plan %s", s.Name())
	}

	if err := t.Relocate(addresses, opts.Start); err != nil {
		return report.Result{}, errors.Wrapf(err, "relocate %s", s.Name())
	}

	if opts.Verify {
		if err := t.Check(); err != nil {
			return report.Result{}, errors.Wrapf(err, "verify %s", s.Name())
		}
	}

	res.Relocated = len(addresses)
	res.After = t.TotalSeekDistance()
	log.Infof("%s: relocated %d addresses, seek distance %d -> %d", s.Name(), res.Relocated, res.Before, res.After)
	return res, nil
}

// Evaluate applies every strategy to its own copy of t, concurrently, and
// returns the results in the order of strategies. t itself is not modified,
// and must not be modified by the caller until Evaluate returns.
func Evaluate(ctx context.Context, t *layout.Trace, opts Options, strategies ...Strategy) ([]report.Result, error) {
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	// clone up front: the source trace is only read from this goroutine
	clones := make([]*layout.Trace, len(strategies))
	for i := range strategies {
		clones[i] = t.Clone()
	}

	results := make([]report.Result, len(strategies))

	wg, wgCtx := errgroup.WithContext(ctx)
	wg.SetLimit(workers)
	for i, s := range strategies {
		i, s := i, s
		wg.Go(func() error {
			if err := wgCtx.Err(); err != nil {
				return err
			}

			res, err := Apply(clones[i], s, opts)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := wg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
