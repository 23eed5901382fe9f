package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "srbill.db", cfg.Database)
	assert.Equal(t, "en-IN", cfg.Locale)
	assert.Equal(t, "₹", cfg.CurrencySymbol)
	assert.NotEmpty(t, cfg.Company.Name)
}

func TestLoadMissingFileFallsBack(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Database, cfg.Database)
}

func TestLoadYAMLOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "srbill.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
database: /var/lib/srbill/data.db
currency_symbol: Rs.
company:
  name: Test Traders
  phone: "12345"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/srbill/data.db", cfg.Database)
	assert.Equal(t, "Rs.", cfg.CurrencySymbol)
	assert.Equal(t, "Test Traders", cfg.Company.Name)
	assert.Equal(t, "12345", cfg.Company.Phone)
	// Fields absent from the file keep defaults.
	assert.Equal(t, "en-IN", cfg.Locale)
}

func TestLoadEnvWinsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "srbill.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database: from-file.db\n"), 0o644))

	t.Setenv("SRBILL_DB", "from-env.db")
	t.Setenv("SRBILL_COMPANY_NAME", "Env Traders")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env.db", cfg.Database)
	assert.Equal(t, "Env Traders", cfg.Company.Name)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "srbill.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
