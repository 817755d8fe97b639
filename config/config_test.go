package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	require.Len(t, cfg.Projects, 4)
	assert.Equal(t, "Torre Anemométrica", cfg.Projects[3].Name)
	assert.Equal(t, "DEVco", cfg.Projects[3].Division)
}

func TestLoadIgnoresUnprefixedEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"PATH", "FORMAT", "ADDR", "LEVEL", "OUTPUT", "WORKERS", "SHEET", "RPS"} {
		t.Setenv(key, "bmp")
	}
	t.Setenv("PATH", "/usr/bin:/bin")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	t.Setenv("PLANTIO_DATA_PATH", "dados/plantio.xlsx")
	t.Setenv("PLANTIO_SERVER_READ_TIMEOUT", "3s")
	t.Setenv("PLANTIO_REPORT_IMAGE_DIR", "graficos")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "dados/plantio.xlsx", cfg.Data.Path)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "graficos", cfg.Report.ImageDir)
}

func TestLoadLayers(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := writeFile(t, dir, "custom.yaml", `
data:
  path: dados/plantio.xlsx
  sheet: Plan1
server:
  addr: ":9000"
  read_timeout: 5s
report:
  workers: 2
projects:
  - division: DEVco
    name: Torre Anemométrica
    title: Torres
`)
	writeFile(t, dir, ".env", "PLANTIO_REPORT_FORMAT=svg\nPLANTIO_SERVER_ADDR=:7000\n")
	t.Setenv("PLANTIO_SERVER_ADDR", ":9100")
	t.Setenv("PLANTIO_LOG_LEVEL", "debug")
	t.Cleanup(func() { os.Unsetenv("PLANTIO_REPORT_FORMAT") })

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "dados/plantio.xlsx", cfg.Data.Path)
	assert.Equal(t, "Plan1", cfg.Data.Sheet)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 60*time.Second, cfg.Server.WriteTimeout, "unset keys keep their defaults")
	assert.Equal(t, 2, cfg.Report.Workers)
	assert.Equal(t, ":9100", cfg.Server.Addr, "the environment wins over .env and the file")
	assert.Equal(t, "svg", cfg.Report.Format, ".env fills unset variables")
	assert.Equal(t, "debug", cfg.Log.Level)

	require.Len(t, cfg.Projects, 1)
	assert.Equal(t, "Torres", cfg.Projects[0].Heading())
}

func TestLoadDefaultFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, dir, DefaultFile, "report:\n  output: out/plantio.pdf\n")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "out/plantio.pdf", cfg.Report.Output)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := writeFile(t, dir, "bad.yaml", "server: [\n")
	_, err = Load(bad)
	assert.ErrorContains(t, err, "parse config")

	t.Setenv("PLANTIO_REPORT_WORKERS", "many")
	_, err = Load("")
	assert.ErrorContains(t, err, "read environment")
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"format", func(c *Config) { c.Report.Format = "bmp" }, "report.format"},
		{"workers", func(c *Config) { c.Report.Workers = 0 }, "report.workers"},
		{"level", func(c *Config) { c.Log.Level = "trace" }, "log.level"},
		{"rate", func(c *Config) { c.Server.RateLimit.RPS = 0 }, "server.rate_limit.rps"},
		{"data", func(c *Config) { c.Data.Path = "" }, "data.path"},
		{"project", func(c *Config) { c.Projects[0].Name = "" }, "projects[0].name"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}

	assert.NoError(t, Default().Validate())
}

func TestHeading(t *testing.T) {
	assert.Equal(t, "UMARI", Project{Name: "UMARI"}.Heading())
	assert.Equal(t, "Umari", Project{Name: "UMARI", Title: "Umari"}.Heading())
}

func TestWriteAndUsage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Default().Write(&buf))
	assert.Contains(t, buf.String(), "workers: 4")
	assert.Contains(t, buf.String(), "read_timeout: 15s")

	buf.Reset()
	require.NoError(t, Usage(&buf))
	assert.Contains(t, buf.String(), "PLANTIO_SERVER_RATE_LIMIT_RPS")
	assert.NotContains(t, buf.String(), "PROJECTS")
}
