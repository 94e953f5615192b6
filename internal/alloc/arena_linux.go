//go:build linux
// +build linux

package alloc

import (
	"os"

	"golang.org/x/sys/unix"

	"github.com/niokit/niokit/internal/logging"
)

// arenaAlloc maps an anonymous, private region of at least size bytes.
// The returned block is page-rounded; callers use the full capacity.
func arenaAlloc(size int) ([]byte, bool) {
	sz := pageRound(size)
	b, err := unix.Mmap(-1, 0, sz, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		logging.Default().WithError(err).Warn("arena mmap failed, falling back to heap", "size", sz)
		return nil, false
	}
	logging.Default().ArenaMap(sz)
	return b, true
}

// arenaFree unmaps a block previously returned by arenaAlloc.
// The slice must cover the whole mapping, so restore full capacity first.
func arenaFree(buf []byte) {
	buf = buf[:cap(buf)]
	if err := unix.Munmap(buf); err != nil {
		logging.Default().WithError(err).Error("arena munmap failed", "size", len(buf))
		return
	}
	logging.Default().ArenaUnmap(len(buf))
}

func pageRound(size int) int {
	page := os.Getpagesize()
	return (size + page - 1) &^ (page - 1)
}
