package loss

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"time"

	"github.com/katalvlaran/arbor/internal/workpool"
)

// BatchOptions configures Batch.
type BatchOptions struct {
	// Workers bounds the number of goroutines. Non-positive means GOMAXPROCS.
	Workers int

	// Logger receives a debug line per failed sentence and an info summary.
	// Nil discards.
	Logger *slog.Logger

	// Loss selects the variant and its hyper-parameters. For KindPerturbed,
	// Loss.Rand (or Loss.Seed) is the base of the per-sentence streams.
	Loss Options
}

// DefaultBatchOptions returns the plain margin loss on GOMAXPROCS workers
// with a discarding logger.
func DefaultBatchOptions() BatchOptions {
	return BatchOptions{
		Workers: 0,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Loss:    DefaultOptions(),
	}
}

// Batch evaluates the loss of every example concurrently and returns the
// per-example values, in input order, and their mean (0 for an empty batch).
//
// Perturbed noise for example i comes from its own stream, derived from the
// base in index order before any worker starts, so the values do not depend
// on scheduling or on Workers.
//
// Errors: the lowest failing example, wrapped as "example i: ...", or the
// context error when ctx ends first.
func Batch(ctx context.Context, examples []Example, opts BatchOptions) ([]float64, float64, error) {
	log := opts.Logger
	if log == nil {
		log = DefaultBatchOptions().Logger
	}
	if err := validateOptions(opts.Loss); err != nil {
		return nil, 0, fmt.Errorf("loss.Batch: %w", err)
	}

	var streams []*rand.Rand
	if opts.Loss.Kind == KindPerturbed {
		base := noiseSource(opts.Loss)
		streams = make([]*rand.Rand, len(examples))
		for i := range streams {
			streams[i] = deriveRNG(base, uint64(i))
		}
	}

	start := time.Now()
	values := make([]float64, len(examples))
	idx, err := workpool.Run(ctx, len(examples), opts.Workers, func(i int) error {
		o := opts.Loss
		if streams != nil {
			o.Rand = streams[i]
		}
		v, err := Compute(examples[i].Scores, examples[i].Gold, o)
		if err != nil {
			log.Debug("loss failed", "example", i, "kind", o.Kind.String(), "err", err)
			return err
		}
		values[i] = v
		return nil
	})
	if err != nil {
		if idx >= 0 {
			err = fmt.Errorf("loss.Batch: example %d: %w", idx, err)
		} else {
			err = fmt.Errorf("loss.Batch: %w", err)
		}
		log.Info("batch aborted", "examples", len(examples), "err", err)
		return nil, 0, err
	}

	var mean float64
	for _, v := range values {
		mean += v
	}
	if len(values) > 0 {
		mean /= float64(len(values))
	}
	log.Info("batch loss",
		"kind", opts.Loss.Kind.String(),
		"examples", len(examples),
		"mean", mean,
		"elapsed", time.Since(start))

	return values, mean, nil
}
