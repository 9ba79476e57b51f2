package contract

import (
	"testing"
	"time"

	"github.com/flowspan/flowspan/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRawInput() *ConfigRawInput {
	return &ConfigRawInput{
		HistoryPathStr: "export.json",
		Limit:          DefaultResultLimit,
		Workers:        4,
		Precision:      1,
		Output:         "text",
		Now:            "",
		Phase:          "build",
		AtRiskWeeks:    DefaultAtRiskWeeks,
		StoreBackend:   "sqlite",
		Emoji:          "no",
		Color:          "yes",
		Statuses: schema.StatusTaxonomy{
			DiscoveryStatuses:  []string{"04 Problem Discovery"},
			BuildStatus:        "06 Build",
			CompletionStatuses: []string{"08 Live"},
			HoldStatuses:       []string{"01 Inbox"},
			HoldHealth:         "On Hold",
		},
	}
}

func TestProcessAndValidateDefaults(t *testing.T) {
	cfg := &Config{}
	input := validRawInput()

	require.NoError(t, ProcessAndValidate(cfg, input))

	assert.Equal(t, "export.json", cfg.HistoryPath)
	assert.Equal(t, DefaultResultLimit, cfg.ResultLimit)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, schema.BuildPhase, cfg.Phase)
	assert.Equal(t, schema.SQLiteBackend, cfg.StoreBackend)
	assert.False(t, cfg.UseEmojis)
	assert.True(t, cfg.UseColors)
	assert.False(t, cfg.Now.IsZero())
}

func TestProcessAndValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*ConfigRawInput)
	}{
		{"zero limit", func(in *ConfigRawInput) { in.Limit = 0 }},
		{"limit over max", func(in *ConfigRawInput) { in.Limit = MaxResultLimit + 1 }},
		{"zero workers", func(in *ConfigRawInput) { in.Workers = 0 }},
		{"precision too high", func(in *ConfigRawInput) { in.Precision = 3 }},
		{"unknown output", func(in *ConfigRawInput) { in.Output = "xml" }},
		{"unknown phase", func(in *ConfigRawInput) { in.Phase = "deploy" }},
		{"zero threshold", func(in *ConfigRawInput) { in.AtRiskWeeks = 0 }},
		{"unknown backend", func(in *ConfigRawInput) { in.StoreBackend = "oracle" }},
		{"bad emoji value", func(in *ConfigRawInput) { in.Emoji = "perhaps" }},
		{"bad now value", func(in *ConfigRawInput) { in.Now = "last tuesday" }},
		{"taxonomy missing build", func(in *ConfigRawInput) { in.Statuses.BuildStatus = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validRawInput()
			tc.mutate(input)
			assert.Error(t, ProcessAndValidate(&Config{}, input))
		})
	}
}

func TestProcessAndValidateCaseFolding(t *testing.T) {
	cfg := &Config{}
	input := validRawInput()
	input.Output = "JSON"
	input.Phase = "Discovery"
	input.StoreBackend = "SQLite"

	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, schema.JSONOut, cfg.Output)
	assert.Equal(t, schema.DiscoveryPhase, cfg.Phase)
	assert.Equal(t, schema.SQLiteBackend, cfg.StoreBackend)
}

// TestProcessAndValidateNowOverride checks the reproducible-run clock.
func TestProcessAndValidateNowOverride(t *testing.T) {
	cfg := &Config{}
	input := validRawInput()
	input.Now = "2025-07-01T12:00:00Z"

	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC), cfg.Now.UTC())
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	cases := []struct {
		name    string
		backend schema.DatabaseBackend
		connStr string
		wantErr bool
	}{
		{"sqlite empty ok", schema.SQLiteBackend, "", false},
		{"none empty ok", schema.NoneBackend, "", false},
		{"mysql valid", schema.MySQLBackend, "root:pw@tcp(localhost:3306)/flowspan", false},
		{"mysql empty", schema.MySQLBackend, "", true},
		{"mysql missing tcp", schema.MySQLBackend, "root:pw@localhost/flowspan", true},
		{"postgres dsn", schema.PostgreSQLBackend, "host=localhost port=5432 user=postgres", false},
		{"postgres url", schema.PostgreSQLBackend, "postgres://postgres@localhost/flowspan", false},
		{"postgres empty", schema.PostgreSQLBackend, "", true},
		{"postgres malformed", schema.PostgreSQLBackend, "localhost:5432", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tc.backend, tc.connStr)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestConfigClone checks taxonomy slices are deep-copied.
func TestConfigClone(t *testing.T) {
	cfg := &Config{
		Taxonomy: schema.StatusTaxonomy{
			DiscoveryStatuses: []string{"04 Problem Discovery"},
			HoldStatuses:      []string{"01 Inbox"},
		},
	}

	clone := cfg.Clone()
	clone.Taxonomy.DiscoveryStatuses[0] = "changed"
	assert.Equal(t, "04 Problem Discovery", cfg.Taxonomy.DiscoveryStatuses[0])
}

func TestConfigParams(t *testing.T) {
	cfg := &Config{
		HistoryPath: "export.json",
		Workers:     8,
		ResultLimit: 25,
		Now:         time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		Taxonomy: schema.StatusTaxonomy{
			DiscoveryStatuses:  []string{"04 Problem Discovery", "05 Solution Discovery"},
			BuildStatus:        "06 Build",
			CompletionStatuses: []string{"08 Live"},
		},
	}

	params := cfg.ConfigParams()
	assert.Equal(t, "export.json", params["history_path"])
	assert.Equal(t, 8, params["workers"])
	assert.Equal(t, "04 Problem Discovery,05 Solution Discovery", params["discovery_statuses"])
	assert.Equal(t, "06 Build", params["build_status"])
}
