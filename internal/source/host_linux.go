package source

import "golang.org/x/sys/unix"

// unix.ErrnoName only knows one name per code. On linux it returns
// EDEADLK, ENOTSUP and EAGAIN for these.
var errnoAliases = []errnoAlias{
	{name: "EDEADLOCK", errno: unix.EDEADLOCK},
	{name: "EOPNOTSUPP", errno: unix.EOPNOTSUPP},
	{name: "EWOULDBLOCK", errno: unix.EWOULDBLOCK},
}
