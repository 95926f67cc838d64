package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("SALES_TEST_FROM_DOTENV", "")
	require.NoError(t, os.Unsetenv("SALES_TEST_FROM_DOTENV"))

	loaded, err := LoadEnv()
	require.NoError(t, err)
	if loaded == "" {
		_, ok := os.LookupEnv("SALES_TEST_FROM_DOTENV")
		assert.False(t, ok)
	}

	require.NoError(t, os.WriteFile(".env", []byte("SALES_TEST_FROM_DOTENV=yes\n"), 0600))
	loaded, err = LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, ".env", loaded)
	assert.Equal(t, "yes", os.Getenv("SALES_TEST_FROM_DOTENV"))
}

func TestGetEnv(t *testing.T) {
	t.Setenv("SALES_TEST_GETENV", "value")
	assert.Equal(t, "value", GetEnv("SALES_TEST_GETENV", "fallback"))
	assert.Equal(t, "fallback", GetEnv("SALES_TEST_DOES_NOT_EXIST", "fallback"))
}

func TestConfigureLogging(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	assert.NotNil(t, ConfigureLogging())
}
