package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reportWith(errors, warnings int) Report {
	var report Report
	for i := 0; i < errors; i++ {
		report.add(Issue{Severity: SeverityError, Category: "missing_element"})
	}
	for i := 0; i < warnings; i++ {
		report.add(Issue{Severity: SeverityWarning, Category: "init_marker"})
	}
	return report
}

func TestQualityScore(t *testing.T) {
	tests := []struct {
		name     string
		errors   int
		warnings int
		expected int
	}{
		{"clean", 0, 0, 100},
		{"one warning", 0, 1, 95},
		{"one error", 1, 0, 85},
		{"two errors one warning", 2, 1, 65},
		{"floor at zero", 7, 2, 0},
		{"well past the floor", 20, 20, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, QualityScore(reportWith(tt.errors, tt.warnings)))
		})
	}
}

func TestTroubleshootOrdersByPriority(t *testing.T) {
	var report Report
	report.add(Issue{Severity: SeverityWarning, Category: "init_marker"})
	report.add(Issue{Severity: SeverityError, Category: "pairing"})
	report.add(Issue{Severity: SeverityError, Category: "help_text_order"})

	entries := Troubleshoot(report)

	require.Len(t, entries, 3)
	assert.Equal(t, PriorityCritical, entries[0].Priority)
	assert.Equal(t, PriorityHigh, entries[1].Priority)
	assert.Equal(t, PriorityMedium, entries[2].Priority)
}

func TestTroubleshootDeduplicatesCategories(t *testing.T) {
	var report Report
	report.add(Issue{Severity: SeverityError, Category: "missing_element", Message: "a"})
	report.add(Issue{Severity: SeverityError, Category: "missing_element", Message: "b"})
	report.add(Issue{Severity: SeverityError, Category: "missing_element", Message: "c"})

	entries := Troubleshoot(report)

	require.Len(t, entries, 1)
	assert.Equal(t, PriorityCritical, entries[0].Priority)
}

func TestTroubleshootIgnoresUnknownCategories(t *testing.T) {
	var report Report
	report.add(Issue{Severity: SeverityError, Category: "parse"})

	assert.Empty(t, Troubleshoot(report))
}

func TestTroubleshootEmptyReport(t *testing.T) {
	assert.Empty(t, Troubleshoot(Report{}))
}
