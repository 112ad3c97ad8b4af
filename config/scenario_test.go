package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleScenario = `
loan:
  principal: 50L
  annual_rate: 8%
  tenure_years: 20
house:
  value: 2Cr
  annual_growth: 5%
fund:
  initial: 33 lakh
  monthly_addition: 2.35L
  annual_growth: 0.14
prepay_month: 12
`

func TestParseScenario(t *testing.T) {
	in, err := ParseScenario([]byte(exampleScenario))
	require.NoError(t, err)

	assert.Equal(t, 50_00_000.0, in.LoanPrincipal)
	assert.Equal(t, 8.0, in.AnnualLoanRate)
	assert.Equal(t, 240, in.TenureMonths)
	assert.Equal(t, 2_00_00_000.0, in.HouseValue)
	assert.InDelta(t, 0.05, in.HouseAnnualGrowth, 1e-12)
	assert.Equal(t, 33_00_000.0, in.FundInitial)
	assert.InDelta(t, 2_35_000, in.FundMonthlyAddition, 1e-6)
	assert.Equal(t, 0.14, in.FundAnnualGrowth)
	assert.Equal(t, 12, in.PrepayMonth)
}

func TestParseScenario_PlainNumbers(t *testing.T) {
	in, err := ParseScenario([]byte(`
loan:
  principal: 1,000,000
  annual_rate: 7.5
  tenure_months: 120
house:
  value: 2_500_000
fund:
  monthly_addition: 10k
`))
	require.NoError(t, err)

	assert.Equal(t, 1_000_000.0, in.LoanPrincipal)
	assert.Equal(t, 7.5, in.AnnualLoanRate)
	assert.Equal(t, 120, in.TenureMonths)
	assert.Equal(t, 2_500_000.0, in.HouseValue)
	assert.Equal(t, 10_000.0, in.FundMonthlyAddition)
	assert.Zero(t, in.PrepayMonth)
}

func TestParseScenario_Errors(t *testing.T) {
	tests := map[string]string{
		"bad amount":      "loan:\n  principal: lots\n",
		"bad percent":     "house:\n  annual_growth: fast\n",
		"tenure mismatch": "loan:\n  tenure_months: 100\n  tenure_years: 20\n",
		"malformed yaml":  "loan: [",
	}

	for name, doc := range tests {
		_, err := ParseScenario([]byte(doc))
		assert.Error(t, err, name)
	}
}

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(exampleScenario), 0o644))

	in, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, 240, in.TenureMonths)

	_, err = LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("SWEEP_WORKERS", "3")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("LOG_LEVEL", "debug")

	t.Chdir(t.TempDir())
	logger, hook := test.NewNullLogger()

	cfg, err := LoadConfig(logger)
	require.NoError(t, err)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, 3, cfg.SweepWorkers)
	assert.Equal(t, "1m30s", cfg.CacheTTL.String())
	assert.Equal(t, "debug", cfg.LogLevel.String())
}

func TestLoadConfig_BadLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "loud")

	logger, _ := test.NewNullLogger()
	_, err := LoadConfig(logger)
	assert.Error(t, err)
}

func TestLoadConfig_ReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("HISTORY_SIZE=7\n"), 0o644))
	t.Chdir(dir)
	t.Cleanup(func() { os.Unsetenv("HISTORY_SIZE") })

	logger, hook := test.NewNullLogger()
	cfg, err := LoadConfig(logger)
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.HistorySize)
	assert.Empty(t, hook.AllEntries())
}
