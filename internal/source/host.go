package source

import (
	"context"
	"fmt"
	"runtime"

	"github.com/user/errnogen/internal/model"
)

// Host enumerates the errno constants of the platform errnogen runs on.
type Host struct{}

// NewHost creates a host source.
func NewHost() *Host {
	return &Host{}
}

// Name returns "host".
func (h *Host) Name() string {
	return "host"
}

// Load returns every errno the platform names, in code order, followed by
// the platform's alias names.
func (h *Host) Load(ctx context.Context) (*model.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := hostEntries()
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no errno names on %s/%s", model.ErrSourceUnavailable, runtime.GOOS, runtime.GOARCH)
	}

	return &model.Table{
		Source:  h.Name(),
		GOOS:    runtime.GOOS,
		GOARCH:  runtime.GOARCH,
		Entries: entries,
	}, nil
}
