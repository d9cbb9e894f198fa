// Package scrape locates and decodes the result the external MCP client
// embeds in its textual output.
//
// The client prints a line of the form "Result: {...}" or "Result: [...]"
// somewhere in a stream that also carries its own logging. There is no formal
// grammar for this format; extraction is a best-effort textual heuristic and
// every caller must be prepared for it to fail, in which case the raw lines
// (minus obvious log noise) are the only thing left to show.
package scrape

import (
	"encoding/json"
	"regexp"
	"strings"
)

// resultMarker finds the start of an embedded result value. The client may
// log several Result: lines (retries, nested calls); the last one is the one
// that corresponds to the invocation.
var resultMarker = regexp.MustCompile(`Result:\s*([\[{])`)

// logNoise matches lines that are clearly client/server logging rather than
// payload: leading log level tokens, bracketed or colon-delimited, with or
// without a timestamp prefix.
var logNoise = regexp.MustCompile(`(?i)^\s*(?:[\d:.,\-T+Z ]{8,}\s+)?(?:\[?(?:INFO|DEBUG|WARNING|WARN|ERROR|TRACE|CRITICAL)\]?[: ])`)

// escapedSeq unescapes the backslash encoding the client applies when it
// stringifies nested JSON into its log output.
var escapedSeq = strings.NewReplacer(
	`\"`, `"`,
	`\n`, "\n",
	`\t`, "\t",
	`\\`, `\`,
)

// ExtractResult scans the captured output for the last embedded result value
// and decodes it. The boolean reports whether a decodable result was found.
func ExtractResult(output string) (any, bool) {
	locs := resultMarker.FindAllStringSubmatchIndex(output, -1)
	if len(locs) == 0 {
		return nil, false
	}

	// Walk candidates from the last occurrence backwards; an earlier
	// Result: line may still decode when the last one is truncated.
	for i := len(locs) - 1; i >= 0; i-- {
		start := locs[i][2] // start of the opening brace/bracket
		candidate := output[start:]

		if v, ok := decodeLeadingJSON(candidate); ok {
			return v, true
		}
		if v, ok := decodeLeadingJSON(escapedSeq.Replace(candidate)); ok {
			return v, true
		}
	}

	return nil, false
}

// decodeLeadingJSON decodes the first JSON value at the head of s, tolerating
// trailing text (the client keeps logging after the result line).
func decodeLeadingJSON(s string) (any, bool) {
	dec := json.NewDecoder(strings.NewReader(s))
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}

	switch v.(type) {
	case map[string]any, []any:
		return v, true
	default:
		// A bare scalar here means the marker matched inside unrelated text.
		return nil, false
	}
}

// FilterLogNoise is the fallback path: it reprints the captured output with
// obvious log lines removed. When everything looks like noise the original
// text is returned unchanged, so the user always sees something.
func FilterLogNoise(output string) string {
	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")

	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if logNoise.MatchString(line) {
			continue
		}
		kept = append(kept, line)
	}

	if len(kept) == 0 {
		return strings.TrimSpace(output)
	}
	return strings.Join(kept, "\n")
}
