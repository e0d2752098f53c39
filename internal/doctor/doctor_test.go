package doctor

import (
	"context"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSuite_Run(t *testing.T) {
	tests := []struct {
		name     string
		statuses []Severity
		want     Summary
		wantCode int
	}{
		{"empty suite", nil, Summary{}, 0},
		{"single pass", []Severity{SeverityPass}, Summary{Passed: 1}, 0},
		{"info only", []Severity{SeverityInfo, SeverityInfo}, Summary{Info: 2}, 0},
		{"warning", []Severity{SeverityPass, SeverityWarning}, Summary{Passed: 1, Warnings: 1}, 1},
		{"error", []Severity{SeverityError}, Summary{Errors: 1}, 2},
		{
			"mixed severities",
			[]Severity{SeverityPass, SeverityPass, SeverityInfo, SeverityWarning, SeverityWarning, SeverityError},
			Summary{Passed: 2, Info: 1, Warnings: 2, Errors: 1},
			2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSuite()
			for _, status := range tt.statuses {
				check := NewMockCheck(t)
				check.EXPECT().Run(mock.Anything).Return(&CheckResult{Name: "c", Category: "x", Status: status})
				s.Add(check)
			}

			before := time.Now().UTC()
			rep := s.Run(context.Background())
			after := time.Now().UTC()

			assert.False(t, rep.Timestamp.Before(before) || rep.Timestamp.After(after), "timestamp out of range")
			assert.Len(t, rep.Results, len(tt.statuses))
			assert.Equal(t, tt.want, rep.Summary)
			assert.Equal(t, tt.wantCode, rep.ExitCode())
		})
	}
}

func TestSuite_ResultsOrder(t *testing.T) {
	names := []string{"first", "second", "third"}
	var checks []Check
	for _, name := range names {
		check := NewMockCheck(t)
		check.EXPECT().Run(mock.Anything).Return(&CheckResult{Name: name, Category: "x"})
		checks = append(checks, check)
	}

	rep := NewSuite(checks...).Run(context.Background())

	for i, want := range names {
		assert.Equal(t, want, rep.Results[i].Name)
	}
}

func TestSuite_FillsNameAndCategory(t *testing.T) {
	check := NewMockCheck(t)
	check.EXPECT().Run(mock.Anything).Return(&CheckResult{Status: SeverityPass})
	check.EXPECT().Name().Return("named")
	check.EXPECT().Category().Return("module")

	rep := NewSuite(check).Run(context.Background())

	require.Len(t, rep.Results, 1)
	assert.Equal(t, "named", rep.Results[0].Name)
	assert.Equal(t, "module", rep.Results[0].Category)
}

func TestReport_HasErrorsAndWarnings(t *testing.T) {
	tests := []struct {
		summary      Summary
		wantErrors   bool
		wantWarnings bool
	}{
		{Summary{}, false, false},
		{Summary{Warnings: 10}, false, true},
		{Summary{Errors: 1}, true, false},
		{Summary{Warnings: 1, Errors: 10}, true, true},
	}
	for _, tt := range tests {
		r := &Report{Summary: tt.summary}
		assert.Equal(t, tt.wantErrors, r.HasErrors(), "%+v", tt.summary)
		assert.Equal(t, tt.wantWarnings, r.HasWarnings(), "%+v", tt.summary)
	}

	var zero Report
	assert.False(t, zero.HasErrors())
	assert.Equal(t, 0, zero.ExitCode())
}

func TestSeverity_JSON(t *testing.T) {
	data, err := json.Marshal(&CheckResult{Name: "vcs", Status: SeverityWarning})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"status":"warning"`)

	var decoded CheckResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, SeverityWarning, decoded.Status)

	var s Severity
	assert.Error(t, s.UnmarshalText([]byte("fatal")))
	assert.Equal(t, "unknown", Severity(9).String())
}
