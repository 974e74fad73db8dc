package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("ENV_SCHEMA_VERSION", ExpectedEnvSchemaVersion)
	t.Setenv("DB_USER", "user")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_NAME", "aicore")
	t.Setenv("API_KEY", "key")
	t.Setenv("ADMIN_KEY", "")
}

func TestValidateEnv_MissingVersion(t *testing.T) {
	t.Setenv("ENV_SCHEMA_VERSION", "")
	os.Unsetenv("ENV_SCHEMA_VERSION")

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENV_SCHEMA_VERSION is not set")
}

func TestValidateEnv_VersionMismatch(t *testing.T) {
	t.Setenv("ENV_SCHEMA_VERSION", "0.9")

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 1.0, got 0.9")
}

func TestValidateEnv_MissingRequired(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_HOST", "")
	t.Setenv("API_KEY", "")

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required environment variables")
	assert.Contains(t, err.Error(), "DB_HOST")
	assert.Contains(t, err.Error(), "API_KEY")
}

func TestValidateEnv_AllPresent(t *testing.T) {
	setRequired(t)
	assert.NoError(t, ValidateEnv())
}

func TestValidateEnvWithWarnings(t *testing.T) {
	t.Run("example values", func(t *testing.T) {
		setRequired(t)
		t.Setenv("DB_PASSWORD", "change_this_secure_password")
		t.Setenv("API_KEY", "generate_with_openssl_rand_hex_32")

		warnings, err := ValidateEnvWithWarnings()
		require.NoError(t, err)
		require.Len(t, warnings, 2)
		assert.Contains(t, warnings[0], "DB_PASSWORD")
		assert.Contains(t, warnings[1], "API_KEY")
	})

	t.Run("admin key shared with api key", func(t *testing.T) {
		setRequired(t)
		t.Setenv("ADMIN_KEY", "key")

		warnings, err := ValidateEnvWithWarnings()
		require.NoError(t, err)
		require.Len(t, warnings, 1)
		assert.Contains(t, warnings[0], "ADMIN_KEY")
	})

	t.Run("propagates validation errors", func(t *testing.T) {
		setRequired(t)
		t.Setenv("ENV_SCHEMA_VERSION", "2.0")

		warnings, err := ValidateEnvWithWarnings()
		assert.Error(t, err)
		assert.Nil(t, warnings)
	})
}
