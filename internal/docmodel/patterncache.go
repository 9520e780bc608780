package docmodel

import (
	"regexp"
	"sync"
)

// maxCachedPatterns bounds the process-wide pattern cache. The pattern set
// used by this package is closed (every call site compiles one of a small,
// fixed number of literal regex strings), so this bound is never expected
// to bind in practice; it exists only to guard against an unbounded growth
// bug rather than to evict anything in normal operation.
const maxCachedPatterns = 512

var (
	patternCacheMu sync.Mutex
	patternCache   = make(map[string]*regexp.Regexp, 64)
)

// CompilePattern returns a compiled regexp for expr, reusing a process-wide
// cache keyed by the pattern string. Safe for concurrent use, though the
// core extraction path itself is single-threaded per request; the cache is
// shared across the warm-started process's requests, append-only. Exported
// so the extract and creativecoop packages share one cache instead of each
// keeping its own.
func CompilePattern(expr string) *regexp.Regexp {
	patternCacheMu.Lock()
	defer patternCacheMu.Unlock()

	if re, ok := patternCache[expr]; ok {
		return re
	}

	re := regexp.MustCompile(expr)
	if len(patternCache) < maxCachedPatterns {
		patternCache[expr] = re
	}
	return re
}
