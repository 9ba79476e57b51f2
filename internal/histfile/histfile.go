// Package histfile reads issue histories from a tracker changelog export.
package histfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/flowspan/flowspan/internal/contract"
	"github.com/flowspan/flowspan/schema"
)

// Export is the on-disk shape of a changelog export file: one snapshot of
// every issue's creation data and field-change events.
type Export struct {
	GeneratedAt time.Time             `json:"generated_at"`
	Issues      []schema.IssueHistory `json:"issues"`
}

// Provider implements contract.HistoryProvider over a changelog export file.
// Fetching and authenticating against the tracker is whatever produced the
// export; this provider only parses it.
type Provider struct {
	path string
}

var _ contract.HistoryProvider = (*Provider)(nil) // Compile-time check

// NewProvider returns a provider for the given export file path.
func NewProvider(path string) *Provider {
	return &Provider{path: path}
}

// Histories parses the export and returns the full batch of issue histories.
func (p *Provider) Histories(ctx context.Context) ([]schema.IssueHistory, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read changelog export %q: %w", p.path, err)
	}

	var export Export
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, fmt.Errorf("failed to parse changelog export %q: %w", p.path, err)
	}

	for i := range export.Issues {
		if err := validateIssue(&export.Issues[i]); err != nil {
			return nil, fmt.Errorf("changelog export %q: %w", p.path, err)
		}
	}

	return export.Issues, nil
}

// validateIssue checks fields the engine cannot default sensibly.
func validateIssue(hist *schema.IssueHistory) error {
	if hist.Key == "" {
		return fmt.Errorf("issue with empty key")
	}
	if hist.CreatedAt.IsZero() {
		return fmt.Errorf("issue %s has no creation timestamp", hist.Key)
	}
	if hist.InitialStatus == "" {
		return fmt.Errorf("issue %s has no initial status", hist.Key)
	}
	for _, ev := range hist.Events {
		if ev.Field != schema.StatusField && ev.Field != schema.HealthField {
			return fmt.Errorf("issue %s has event with unknown field %q", hist.Key, ev.Field)
		}
		if ev.OccurredAt.IsZero() {
			return fmt.Errorf("issue %s has event with no timestamp", hist.Key)
		}
	}
	return nil
}
