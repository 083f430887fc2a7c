//go:build !unix

package source

import (
	"fmt"
	"runtime"

	"github.com/user/errnogen/internal/model"
)

func hostEntries() ([]model.Entry, error) {
	return nil, fmt.Errorf("%w: no errno table on %s", model.ErrSourceUnavailable, runtime.GOOS)
}
