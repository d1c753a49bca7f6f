package source

import (
	"context"

	"github.com/sqlc-dev/spacesql/internal/normalize"
)

// Dedup wraps src so that a statement equal to an earlier one under
// normalize.ForCompare is dropped.
func Dedup(src Source) Source {
	return &dedupSource{Source: src}
}

type dedupSource struct {
	Source
}

func (d *dedupSource) Name() string { return d.Source.Name() + " (dedup)" }

func (d *dedupSource) Statements(ctx context.Context) (<-chan Statement, <-chan error) {
	in, errs := d.Source.Statements(ctx)
	out := make(chan Statement, 64)

	go func() {
		defer close(out)
		seen := make(map[string]struct{})
		for stmt := range in {
			key := normalize.ForCompare(stmt.SQL)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			if !emit(ctx, out, stmt) {
				// Drain so the inner reader can finish
				for range in {
				}
				return
			}
		}
	}()

	return out, errs
}
