package histfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/flowspan/flowspan/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeExport(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestHistoriesValidExport(t *testing.T) {
	path := writeExport(t, `{
  "generated_at": "2025-07-01T00:00:00Z",
  "issues": [
    {
      "key": "FLOW-1",
      "summary": "Checkout latency regression",
      "created_at": "2025-01-06T09:00:00Z",
      "initial_status": "01 Inbox",
      "initial_health": "On Track",
      "events": [
        {"occurred_at": "2025-01-13T09:00:00Z", "field": "status", "from_value": "01 Inbox", "to_value": "06 Build"},
        {"occurred_at": "2025-01-20T09:00:00Z", "field": "health", "from_value": "On Track", "to_value": "On Hold"}
      ]
    }
  ]
}`)

	histories, err := NewProvider(path).Histories(context.Background())
	require.NoError(t, err)
	require.Len(t, histories, 1)

	hist := histories[0]
	assert.Equal(t, "FLOW-1", hist.Key)
	assert.Equal(t, "01 Inbox", hist.InitialStatus)
	assert.Equal(t, time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC), hist.CreatedAt)
	require.Len(t, hist.Events, 2)
	assert.Equal(t, schema.StatusField, hist.Events[0].Field)
	assert.Equal(t, schema.HealthField, hist.Events[1].Field)
	assert.Equal(t, "On Hold", hist.Events[1].ToValue)
}

func TestHistoriesMissingFile(t *testing.T) {
	_, err := NewProvider(filepath.Join(t.TempDir(), "missing.json")).Histories(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read changelog export")
}

func TestHistoriesMalformedJSON(t *testing.T) {
	path := writeExport(t, `{"issues": [`)
	_, err := NewProvider(path).Histories(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse changelog export")
}

func TestHistoriesValidation(t *testing.T) {
	cases := []struct {
		name    string
		content string
		wantMsg string
	}{
		{
			name:    "empty key",
			content: `{"issues": [{"key": "", "created_at": "2025-01-06T09:00:00Z", "initial_status": "01 Inbox"}]}`,
			wantMsg: "empty key",
		},
		{
			name:    "missing creation timestamp",
			content: `{"issues": [{"key": "FLOW-1", "initial_status": "01 Inbox"}]}`,
			wantMsg: "no creation timestamp",
		},
		{
			name:    "missing initial status",
			content: `{"issues": [{"key": "FLOW-1", "created_at": "2025-01-06T09:00:00Z"}]}`,
			wantMsg: "no initial status",
		},
		{
			name: "unknown event field",
			content: `{"issues": [{"key": "FLOW-1", "created_at": "2025-01-06T09:00:00Z", "initial_status": "01 Inbox",
				"events": [{"occurred_at": "2025-01-07T09:00:00Z", "field": "assignee", "to_value": "someone"}]}]}`,
			wantMsg: `unknown field "assignee"`,
		},
		{
			name: "event without timestamp",
			content: `{"issues": [{"key": "FLOW-1", "created_at": "2025-01-06T09:00:00Z", "initial_status": "01 Inbox",
				"events": [{"field": "status", "to_value": "06 Build"}]}]}`,
			wantMsg: "no timestamp",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeExport(t, tc.content)
			_, err := NewProvider(path).Histories(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}

func TestHistoriesCancelledContext(t *testing.T) {
	path := writeExport(t, `{"issues": []}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewProvider(path).Histories(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
