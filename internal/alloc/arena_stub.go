//go:build !linux
// +build !linux

package alloc

// The page arena is only wired up on Linux. Other platforms report the arena
// as unavailable and Alloc falls back to plain heap blocks.

func arenaAlloc(size int) ([]byte, bool) {
	return nil, false
}

func arenaFree(buf []byte) {
}
