package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestISO8601(t *testing.T) {
	assert.Equal(t, "1970-01-01T00:00:00Z", ISO8601(0))
	assert.Equal(t, "2023-11-14T22:13:20Z", ISO8601(1700000000000))

	// Values outside the representable range fall back to the raw number.
	assert.Equal(t, "-1", ISO8601(-1))
	assert.Equal(t, "999999999999999999", ISO8601(999999999999999999))
}

func TestAddTimestamps(t *testing.T) {
	data := map[string]any{
		"id":      "DEMO-1",
		"created": float64(1700000000000),
		"fields": []any{
			map[string]any{"updated": float64(0)},
		},
	}

	enriched := AddTimestamps(data).(map[string]any)

	assert.Equal(t, "2023-11-14T22:13:20Z", enriched["created_iso8601"])
	assert.Equal(t, float64(1700000000000), enriched["created"], "original field is kept")

	fields := enriched["fields"].([]any)
	nested := fields[0].(map[string]any)
	assert.Equal(t, "1970-01-01T00:00:00Z", nested["updated_iso8601"])
}

func TestAddTimestampsIgnoresNonEpochValues(t *testing.T) {
	data := map[string]any{
		"created": "yesterday",
		"updated": 1.5, // fractional, not an epoch
	}

	enriched := AddTimestamps(data).(map[string]any)

	_, hasCreated := enriched["created_iso8601"]
	_, hasUpdated := enriched["updated_iso8601"]
	assert.False(t, hasCreated)
	assert.False(t, hasUpdated)
}

func TestAddTimestampsDoesNotMutateInput(t *testing.T) {
	data := map[string]any{"created": float64(0)}

	AddTimestamps(data)

	_, mutated := data["created_iso8601"]
	assert.False(t, mutated)
}

func TestFormatJSON(t *testing.T) {
	out, err := FormatJSON(map[string]any{"id": "DEMO-1"})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"id\": \"DEMO-1\"\n}", out)
}

func TestPostProcessStructured(t *testing.T) {
	output := `INFO: ok
Result: {"id": "DEMO-1", "created": 1700000000000}`

	pretty, structured := PostProcess(output)
	assert.True(t, structured)
	assert.Contains(t, pretty, `"created_iso8601": "2023-11-14T22:13:20Z"`)
	assert.NotContains(t, pretty, "INFO:")
}

func TestPostProcessFallback(t *testing.T) {
	output := "INFO: starting\nno structured payload here"

	text, structured := PostProcess(output)
	assert.False(t, structured)
	assert.Equal(t, "no structured payload here", text)
}
