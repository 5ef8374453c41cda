package edmonds

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/katalvlaran/arbor/arc"
	"github.com/katalvlaran/arbor/internal/workpool"
	"github.com/katalvlaran/arbor/tree"
)

// BatchOptions configures DecodeBatch.
type BatchOptions struct {
	// Workers bounds the number of goroutines. Non-positive means GOMAXPROCS.
	Workers int

	// Logger receives a debug line per failed sentence and an info summary.
	// Nil discards.
	Logger *slog.Logger

	// Decode holds the options applied to every sentence.
	Decode []Option
}

// DefaultBatchOptions returns BatchOptions with GOMAXPROCS workers and a
// discarding logger.
func DefaultBatchOptions() BatchOptions {
	return BatchOptions{
		Workers: 0,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// DecodeBatch decodes independent sentences concurrently. out[i] belongs to
// batch[i]. The context is checked between sentences only.
//
// Errors: the lowest failing sentence, wrapped as "sentence i: ...", or the
// context error when ctx ends first. No partial result is returned.
func DecodeBatch(ctx context.Context, batch []*arc.ScoreMatrix, opts BatchOptions) ([]tree.Heads, error) {
	log := opts.Logger
	if log == nil {
		log = DefaultBatchOptions().Logger
	}

	start := time.Now()
	out := make([]tree.Heads, len(batch))
	idx, err := workpool.Run(ctx, len(batch), opts.Workers, func(i int) error {
		heads, _, err := Decode(batch[i], opts.Decode...)
		if err != nil {
			log.Debug("decode failed", "sentence", i, "err", err)
			return err
		}
		out[i] = heads
		return nil
	})
	if err != nil {
		if idx >= 0 {
			err = fmt.Errorf("edmonds.DecodeBatch: sentence %d: %w", idx, err)
		} else {
			err = fmt.Errorf("edmonds.DecodeBatch: %w", err)
		}
		log.Info("batch aborted", "sentences", len(batch), "err", err)
		return nil, err
	}
	log.Info("batch decoded",
		"sentences", len(batch),
		"workers", workpool.Workers(opts.Workers, len(batch)),
		"elapsed", time.Since(start))

	return out, nil
}
