package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenario = `
loan:
  principal: 10L
  annual_rate: 9%
  tenure_months: 12
house:
  value: 50L
  annual_growth: 6%
fund:
  initial: 5L
  monthly_addition: 50k
  annual_growth: 12%
prepay_month: 4
`

func writeScenario(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(scenario), 0o644))
	return path
}

func TestRun_Sweep(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	var stdout, stderr bytes.Buffer
	pdfPath := filepath.Join(t.TempDir(), "out.pdf")

	code := run([]string{"-config", writeScenario(t), "-pdf", pdfPath}, &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "PrepayMonth")
	assert.Contains(t, stdout.String(), "Best month:")

	data, err := os.ReadFile(pdfPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestRun_Schedule(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"-config", writeScenario(t), "-schedule", "-prepay", "6"}, &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "Lumpsum")
	assert.Contains(t, stdout.String(), "closed in month 6")
}

func TestRun_ScheduleUsesPrepayMonthFromFile(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"-config", writeScenario(t), "-schedule"}, &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "closed in month 4")
}

func TestRun_Usage(t *testing.T) {
	var stdout, stderr bytes.Buffer

	assert.Equal(t, 2, run(nil, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "Usage: prepaysim")

	assert.Equal(t, 1, run([]string{"-config", filepath.Join(t.TempDir(), "nope.yaml")}, &stdout, &stderr))
}
