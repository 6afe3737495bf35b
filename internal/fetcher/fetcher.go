package fetcher

import (
	"context"
	"fmt"
	"net/url"

	"weathercheck/internal/weather"
)

// Getter issues one weather request. *weather.Client implements it.
type Getter interface {
	Get(ctx context.Context, query url.Values) (*weather.Response, error)
}

// Fetcher sits between the runner and the weather client. When dedupe is on,
// identical queries within a run hit the network once. The runner calls Fetch
// sequentially, so completed responses are all that is cached.
type Fetcher struct {
	client Getter
	cache  *Cache
	dedupe bool
}

func NewFetcher(client Getter, dedupe bool) *Fetcher {
	return &Fetcher{
		client: client,
		cache:  NewCache(),
		dedupe: dedupe,
	}
}

// Fetch returns the response for query. cached reports whether it was served
// without a new request.
func (f *Fetcher) Fetch(ctx context.Context, query url.Values) (resp *weather.Response, cached bool, err error) {
	if ctx == nil {
		return nil, false, fmt.Errorf("Fetch: nil context")
	}
	if f == nil || f.client == nil {
		return nil, false, fmt.Errorf("Fetch: nil client (use NewFetcher)")
	}
	if !f.dedupe {
		resp, err := f.client.Get(ctx, query)
		return resp, false, err
	}
	if f.cache == nil {
		return nil, false, fmt.Errorf("Fetch: nil cache (use NewFetcher)")
	}

	// url.Values.Encode sorts by key, so equal queries share a key.
	key := query.Encode()

	if hit, ok := f.cache.Get(key); ok {
		return hit, true, nil
	}

	resp, err = f.client.Get(ctx, query)
	if err != nil {
		return nil, false, err
	}

	// Only completed exchanges are cached; transport failures are retried by
	// the next rule that asks.
	f.cache.Set(key, resp)
	return resp, false, nil
}
