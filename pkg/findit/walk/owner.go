package walk

import (
	"os"
	"os/user"
	"strconv"
	"syscall"
)

// ownerName resolves a file's owning username, falling back to the
// numeric uid as a string when the passwd database has no entry (common
// in minimal containers) rather than treating it as a failure.
func ownerName(info os.FileInfo) string {
	sys, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return ""
	}
	uidStr := strconv.FormatUint(uint64(sys.Uid), 10)
	u, err := user.LookupId(uidStr)
	if err != nil {
		return uidStr
	}
	return u.Username
}

// groupName mirrors ownerName for the file's owning group.
func groupName(info os.FileInfo) string {
	sys, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return ""
	}
	gidStr := strconv.FormatUint(uint64(sys.Gid), 10)
	g, err := user.LookupGroupId(gidStr)
	if err != nil {
		return gidStr
	}
	return g.Name
}
