package main

import (
	"context"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/theoremus-urban-solutions/trajsquish/gtfsrt"
)

// fetcher reads recorded VehiclePositions messages from local files or
// http(s) URLs.
type fetcher struct {
	client *gtfsrt.Client
}

func newFetcher(c *gtfsrt.Client) *fetcher {
	return &fetcher{client: c}
}

func (f *fetcher) fetch(ctx context.Context, urlOrPath string) ([]byte, error) {
	if !strings.HasPrefix(urlOrPath, "http://") && !strings.HasPrefix(urlOrPath, "https://") {
		data, err := os.ReadFile(urlOrPath)
		if err != nil {
			return nil, errors.Wrap(err, "read feed file")
		}
		return data, nil
	}
	return f.client.Fetch(ctx, urlOrPath)
}
