//go:build linux

package meta

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// OpenFileHandles counts this process's open file descriptors.
func OpenFileHandles() (int, error) {
	dir, err := os.ReadDir("/proc/self/fd")
	return len(dir), err
}

var memRE = regexp.MustCompile(`\w+:\s+(\d+) kB`)

// MemInfo parses the first five lines of /proc/meminfo.
func MemInfo() (MemStats, error) {
	var mi MemStats
	b, err := os.ReadFile("/proc/meminfo")
	if err != nil {
		return mi, err
	}
	lines := strings.Split(string(b), "\n")
	for i, p := range []*int{&mi.Total, &mi.Free, &mi.Available, &mi.Buffers, &mi.Cached} {
		m := memRE.FindStringSubmatch(lines[i])
		if m == nil {
			return mi, fmt.Errorf("unexpected /proc/meminfo line %d: %q", i, lines[i])
		}
		*p, err = strconv.Atoi(m[1])
		if err != nil {
			return mi, fmt.Errorf("parsing %q: %w", lines[i], err)
		}
	}
	return mi, nil
}
