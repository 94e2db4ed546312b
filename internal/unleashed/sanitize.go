package unleashed

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"unleashed-proxy/internal/exceptions"
)

// Query parameters that steer the proxy itself. They are stripped before
// anything is signed or forwarded.
const (
	paramStartPage  = "startPage"
	paramChunkSize  = "chunkSize"
	paramSinglePage = "singlePage"
	paramFlatten    = "flatten"
	paramPageSize   = "pageSize"

	// The function invocation key injected by the gateway. It must never
	// reach the signed string or the upstream call.
	paramFunctionKey = "code"
)

// Controls carries the pagination behavior requested by the client, separated
// from the filters that go upstream.
type Controls struct {
	StartPage  int
	ChunkSize  int // 0 means no explicit chunk size was requested
	SinglePage bool
	Flatten    bool
}

// SanitizeFilters prepares the client's raw query parameters for upstream use.
// It strips the function key, extracts the proxy control parameters, drops
// anything outside the resource's whitelist, and guarantees a pageSize is
// present. Unknown filters are dropped silently rather than rejected.
func SanitizeFilters(resource Resource, raw map[string]string) (map[string]string, Controls, error) {
	controls := Controls{StartPage: 1}
	filters := make(map[string]string, len(raw))
	for key, value := range raw {
		switch key {
		case paramFunctionKey:
			continue
		case paramStartPage:
			page, err := strconv.Atoi(value)
			if err != nil || page < 1 {
				return nil, controls, exceptions.InvalidInput(fmt.Sprintf("startPage must be a positive integer, got %q", value))
			}
			controls.StartPage = page
		case paramChunkSize:
			size, err := strconv.Atoi(value)
			if err != nil || size < 1 {
				return nil, controls, exceptions.InvalidInput(fmt.Sprintf("chunkSize must be a positive integer, got %q", value))
			}
			controls.ChunkSize = size
		case paramSinglePage:
			controls.SinglePage = strings.EqualFold(value, "true")
		case paramFlatten:
			controls.Flatten = strings.EqualFold(value, "true")
		default:
			filters[key] = value
		}
	}
	if resource.Whitelist != nil {
		for key := range filters {
			if !contains(resource.Whitelist, key) {
				delete(filters, key)
			}
		}
	}
	if _, ok := filters[paramPageSize]; !ok {
		filters[paramPageSize] = strconv.Itoa(resource.DefaultPageSize)
	}
	return filters, controls, nil
}

// CanonicalQuery serializes a filter set as the deterministic key=value string
// that is both signed and sent. Values are written verbatim: the upstream
// signs against the raw query-string bytes, so escaping here would break the
// signature.
func CanonicalQuery(filters map[string]string) string {
	keys := make([]string, 0, len(filters))
	for key := range filters {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+filters[key])
	}
	return strings.Join(pairs, "&")
}

func contains(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
