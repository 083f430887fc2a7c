//go:build unix

package source

import (
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/user/errnogen/internal/model"
)

// maxErrno bounds the scan. Linux on MIPS has the highest codes (EDQUOT 1133).
const maxErrno = 4096

// errnoAlias is a second name for an errno already in the platform table.
type errnoAlias struct {
	name  string
	errno syscall.Errno
}

func hostEntries() ([]model.Entry, error) {
	var entries []model.Entry
	for e := syscall.Errno(1); e < maxErrno; e++ {
		if name := unix.ErrnoName(e); name != "" {
			entries = append(entries, model.Entry{Name: name, Code: int(e)})
		}
	}

	for _, a := range errnoAliases {
		// Already the primary name
		if unix.ErrnoName(a.errno) == a.name {
			continue
		}
		entries = append(entries, model.Entry{Name: a.name, Code: int(a.errno)})
	}

	return entries, nil
}
