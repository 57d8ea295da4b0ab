package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/remiges-tech/slownie/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type appConfig struct {
	AppServerPort string `json:"app_server_port"`
	MetricsPort   int    `json:"metrics_port,omitempty"`
	LogPriority   string `json:"log_priority,omitempty"`
	Debug         bool   `json:"debug,omitempty"`
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestFileLoad(t *testing.T) {
	path := writeConfig(t, `{"app_server_port": "8080", "metrics_port": 9091}`)

	src := &config.File{ConfigFilePath: path}
	var cfg appConfig
	require.NoError(t, config.Load(src, &cfg))
	assert.Equal(t, appConfig{AppServerPort: "8080", MetricsPort: 9091}, cfg)

	port, err := src.Get("app_server_port")
	require.NoError(t, err)
	assert.Equal(t, "8080", port)

	metrics, err := src.Get("metrics_port")
	var notString *config.ValueNotStringError
	assert.ErrorAs(t, err, &notString)
	assert.Equal(t, "9091", metrics)

	_, err = src.Get("missing")
	var notFound *config.KeyNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestFileLoadErrors(t *testing.T) {
	var cfg appConfig
	assert.Error(t, config.Load(&config.File{}, &cfg))
	assert.Error(t, config.LoadConfigFromFile(filepath.Join(t.TempDir(), "nope.json"), &cfg))
	assert.Error(t, config.LoadConfigFromFile(writeConfig(t, `{"unknown_key": 1}`), &cfg))
}

type fakeRigel map[string]string

func (f fakeRigel) Get(_ context.Context, key string) (string, error) {
	v, ok := f[key]
	if !ok {
		return "", errors.New("key not found")
	}
	return v, nil
}

func TestRigelLoad(t *testing.T) {
	src := &config.Rigel{Client: fakeRigel{
		"app_server_port": "8081",
		"metrics_port":    "9100",
		"debug":           "true",
	}}

	cfg := appConfig{LogPriority: "warn"}
	require.NoError(t, config.Load(src, &cfg))
	assert.Equal(t, appConfig{AppServerPort: "8081", MetricsPort: 9100, LogPriority: "warn", Debug: true}, cfg)
}

func TestRigelLoadErrors(t *testing.T) {
	var cfg appConfig
	assert.Error(t, config.Load(&config.Rigel{}, &cfg))

	err := config.Load(&config.Rigel{Client: fakeRigel{}}, &cfg)
	assert.ErrorContains(t, err, "app_server_port")

	err = config.Load(&config.Rigel{Client: fakeRigel{"app_server_port": "1", "metrics_port": "x"}}, &cfg)
	assert.ErrorContains(t, err, "not an integer")

	assert.Error(t, config.Load(&config.Rigel{Client: fakeRigel{}}, cfg))
}
