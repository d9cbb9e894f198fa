// Package render prepares post-processed tool output for display.
//
// YouTrack reports times as millisecond epoch integers, which are useless to
// read in a terminal. Decoded results get companion ISO8601 fields added next
// to the known timestamp fields before re-serialization.
package render

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"ytmenu/internal/scrape"
)

// timestampFields are the YouTrack fields that carry millisecond epochs.
var timestampFields = []string{"created", "updated"}

// ISO8601 converts a YouTrack millisecond epoch to an RFC3339 string in UTC.
// Values that cannot represent a time are returned as their decimal string.
func ISO8601(timestampMs int64) string {
	const maxMs = int64(253402300799999) // 9999-12-31T23:59:59.999Z
	if timestampMs < 0 || timestampMs > maxMs {
		return strconv.FormatInt(timestampMs, 10)
	}
	return time.UnixMilli(timestampMs).UTC().Format(time.RFC3339)
}

// AddTimestamps walks the decoded structure and, for every object with an
// integer "created" or "updated" field, adds a sibling "<field>_iso8601"
// string. The input is never mutated; maps and slices along the path are
// copied.
func AddTimestamps(data any) any {
	switch v := data.(type) {
	case map[string]any:
		out := make(map[string]any, len(v)+2)
		for k, val := range v {
			out[k] = AddTimestamps(val)
		}
		for _, field := range timestampFields {
			if ms, ok := epochMillis(v[field]); ok {
				out[field+"_iso8601"] = ISO8601(ms)
			}
		}
		return out

	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = AddTimestamps(item)
		}
		return out

	default:
		return data
	}
}

// epochMillis reports whether val is an integer-valued timestamp. Numbers
// arrive as float64 via encoding/json; anything fractional is not an epoch.
func epochMillis(val any) (int64, bool) {
	switch n := val.(type) {
	case float64:
		if n != float64(int64(n)) {
			return 0, false
		}
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

// FormatJSON renders a decoded value as indented JSON with timestamp
// enrichment applied.
func FormatJSON(data any) (string, error) {
	b, err := json.MarshalIndent(AddTimestamps(data), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to format result: %w", err)
	}
	return string(b), nil
}

// PostProcess turns raw captured client output into display text: the
// embedded result pretty-printed when one can be extracted, the noise-
// filtered raw lines otherwise. The boolean reports which path was taken.
func PostProcess(output string) (string, bool) {
	if result, ok := scrape.ExtractResult(output); ok {
		if pretty, err := FormatJSON(result); err == nil {
			return pretty, true
		}
	}
	return scrape.FilterLogNoise(output), false
}
