package report

import (
	"context"
	"fmt"
	"sort"

	"github.com/sourcegraph/conc/pool"

	"devjournal/internal/timeutil"
	"devjournal/journal"
)

const DefaultWorkers = 4

// DateSource is the read side of the entry store.
type DateSource interface {
	ListDates() ([]string, error)
	Entries(date string) ([]journal.Entry, error)
}

type Options struct {
	Workers int
	Colors  Colors
}

type dateResult struct {
	date    string
	entries []journal.Entry
	err     error
}

// Collect loads every stored date in [start, end] concurrently and returns the
// entries in ascending date order, each timestamp prefixed with its date.
// Dates that fail to load are returned in skipped instead of failing the call.
func Collect(ctx context.Context, source DateSource, start, end string, workers int) ([]journal.Entry, []string, error) {
	if err := validateRange(start, end); err != nil {
		return nil, nil, err
	}
	if start > end {
		return []journal.Entry{}, nil, nil
	}

	dates, err := source.ListDates()
	if err != nil {
		return nil, nil, fmt.Errorf("list journal dates: %w", err)
	}

	if workers <= 0 {
		workers = DefaultWorkers
	}
	p := pool.NewWithResults[dateResult]().WithContext(ctx).WithMaxGoroutines(workers)
	for _, date := range dates {
		if !timeutil.InRange(date, start, end) {
			continue
		}
		if ctx.Err() != nil {
			break
		}
		date := date
		p.Go(func(ctx context.Context) (dateResult, error) {
			if err := ctx.Err(); err != nil {
				return dateResult{}, err
			}
			entries, err := source.Entries(date)
			return dateResult{date: date, entries: entries, err: err}, nil
		})
	}

	results, err := p.Wait()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, nil, ctxErr
	}
	if err != nil {
		return nil, nil, err
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].date < results[j].date
	})

	entries := make([]journal.Entry, 0, len(results)*4)
	skipped := make([]string, 0)
	for _, result := range results {
		if result.err != nil {
			skipped = append(skipped, result.date)
			continue
		}
		for _, entry := range result.entries {
			entry.Timestamp = result.date + " " + entry.Timestamp
			entries = append(entries, entry)
		}
	}
	return entries, skipped, nil
}

// Run collects the range and builds its report.
func Run(ctx context.Context, source DateSource, start, end string, opts Options) (*ActivityReport, error) {
	entries, skipped, err := Collect(ctx, source, start, end, opts.Workers)
	if err != nil {
		return nil, err
	}

	report := Build(start, end, entries, opts.Colors)
	if len(skipped) > 0 {
		report.SkippedDates = skipped
	}
	return report, nil
}

func validateRange(start, end string) error {
	if err := timeutil.ValidateDateKey(start); err != nil {
		return fmt.Errorf("start date: %w", err)
	}
	if err := timeutil.ValidateDateKey(end); err != nil {
		return fmt.Errorf("end date: %w", err)
	}
	return nil
}
