// Package meta probes host-level facts about the running process for the
// server's /debug/meta dump. Probes are best-effort: on unsupported
// platforms they return zero values.
package meta

// MemStats is the head of /proc/meminfo, in kB.
type MemStats struct {
	Total, Free, Available, Buffers, Cached int
}
