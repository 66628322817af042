package catalog

import (
	"context"

	"go.uber.org/zap"

	"github.com/stay-browser/server/internal/accommodation"
)

// Fetcher is the upstream source of the listing.
type Fetcher interface {
	Fetch(ctx context.Context) (*Result, error)
	URL() string
}

// Reporter receives the outcome of every load. The websocket broadcaster and
// the metrics package both satisfy it.
type Reporter interface {
	CatalogFetched(count, dropped int)
	CatalogFetchFailed(url string, err error)
}

// Loader performs the one fetch a listing screen does when it mounts.
// Failures never reach the visitor: they are reported and an empty listing
// is returned. There is no retry within a load.
type Loader struct {
	fetcher   Fetcher
	reporters []Reporter
	log       *zap.Logger
}

// NewLoader creates a loader reporting to the given sinks.
func NewLoader(fetcher Fetcher, log *zap.Logger, reporters ...Reporter) *Loader {
	return &Loader{fetcher: fetcher, reporters: reporters, log: log}
}

// Load fetches the listing. On failure the error is returned alongside an
// empty, non-nil slice so callers can still render an empty list.
func (l *Loader) Load(ctx context.Context) ([]accommodation.Accommodation, error) {
	result, err := l.fetcher.Fetch(ctx)
	if err != nil {
		l.log.Error("error fetching accommodations",
			zap.String("url", l.fetcher.URL()),
			zap.Error(err),
		)
		for _, r := range l.reporters {
			r.CatalogFetchFailed(l.fetcher.URL(), err)
		}
		return []accommodation.Accommodation{}, err
	}

	l.log.Info("accommodations fetched",
		zap.Int("count", len(result.Accommodations)),
		zap.Int("dropped", result.Dropped),
	)
	for _, r := range l.reporters {
		r.CatalogFetched(len(result.Accommodations), result.Dropped)
	}
	return result.Accommodations, nil
}
