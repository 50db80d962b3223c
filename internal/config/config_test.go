package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[database]
driver = "memory"
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "UTC", cfg.Scheduling.Timezone)
	assert.Equal(t, 366, cfg.Scheduling.MaxGenerationDays)
	assert.Equal(t, 500, cfg.Scheduling.InsertBatchSize)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9000

[database]
driver = "postgres"
host = "db.internal"
port = 5433
user = "app"
password = "from-file"
dbname = "appointments"
`)
	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("HTTP_PORT", "9100")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Server.HTTPPort)
	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t,
		"host=db.internal port=5433 user=app password=from-env dbname=appointments sslmode=disable",
		cfg.Database.DSN())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
	}{
		{name: "unknown driver", content: "[database]\ndriver = \"mysql\"\n"},
		{name: "postgres without dbname", content: "[database]\ndriver = \"postgres\"\n"},
		{name: "bad timezone", content: "[database]\ndriver = \"memory\"\n[scheduling]\ntimezone = \"Mars/Olympus\"\n"},
		{name: "batch size above bind limit", content: "[database]\ndriver = \"memory\"\n[scheduling]\ninsert_batch_size = 6554\n"},
		{name: "bad port env", content: "[database]\ndriver = \"memory\"\n", env: map[string]string{"HTTP_PORT": "http"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load(writeConfig(t, tt.content))

			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))

	assert.ErrorIs(t, err, ErrReadConfig)
}
