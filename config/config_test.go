package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/evidenceops/hyperproof-apiclient/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scrubEnv unsets all configuration variables for the duration of the test,
// so results do not depend on the invoking shell.
func scrubEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{
		"CLIENT_ID",
		"CLIENT_SECRET",
		"HYPERPROOF_TOKEN_URL",
		"HYPERPROOF_API_URL",
		"HYPERPROOF_AUTH_METHOD",
		"HYPERPROOF_USERNAME",
		"HYPERPROOF_PASSWORD",
		"HYPERPROOF_CA_CERTS",
		"HYPERPROOF_TIMEOUT",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_defaults(t *testing.T) {
	scrubEnv(t)
	t.Setenv("CLIENT_ID", "myclient")
	t.Setenv("CLIENT_SECRET", "deadbeef")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "myclient", cfg.ClientID)
	assert.Equal(t, "deadbeef", cfg.ClientSecret)
	assert.Equal(t, DefaultTokenURL, cfg.TokenURL)
	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, auth.MethodOauth2, cfg.AuthMethod)
	assert.Empty(t, cfg.CACerts)
	assert.Zero(t, cfg.Timeout)
}

func TestLoad_missing_credentials(t *testing.T) {
	scrubEnv(t)

	_, err := Load("")
	assert.EqualError(t, err, "missing CLIENT_ID in environment")

	t.Setenv("CLIENT_ID", "myclient")
	_, err = Load("")
	assert.EqualError(t, err, "missing CLIENT_SECRET in environment")
}

func TestLoad_overrides(t *testing.T) {
	scrubEnv(t)
	t.Setenv("CLIENT_ID", "myclient")
	t.Setenv("CLIENT_SECRET", "deadbeef")
	t.Setenv("HYPERPROOF_TOKEN_URL", "https://accounts.hyperproof.test/oauth/token")
	t.Setenv("HYPERPROOF_API_URL", "https://api.hyperproof.test")
	t.Setenv("HYPERPROOF_CA_CERTS", "ca1.pem, ca2.pem")
	t.Setenv("HYPERPROOF_TIMEOUT", "30s")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://accounts.hyperproof.test/oauth/token", cfg.TokenURL)
	assert.Equal(t, "https://api.hyperproof.test", cfg.APIURL)
	assert.Equal(t, []string{"ca1.pem", "ca2.pem"}, cfg.CACerts)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
}

func TestLoad_bad_timeout(t *testing.T) {
	scrubEnv(t)
	t.Setenv("CLIENT_ID", "myclient")
	t.Setenv("CLIENT_SECRET", "deadbeef")
	t.Setenv("HYPERPROOF_TIMEOUT", "soon")

	_, err := Load("")
	assert.ErrorContains(t, err, "invalid HYPERPROOF_TIMEOUT")
}

func TestLoad_bad_method(t *testing.T) {
	scrubEnv(t)
	t.Setenv("HYPERPROOF_AUTH_METHOD", "kerberos")

	_, err := Load("")
	assert.EqualError(t, err, `unexpected Method "kerberos"`)
}

func TestLoad_basic_method(t *testing.T) {
	scrubEnv(t)
	t.Setenv("HYPERPROOF_AUTH_METHOD", "basic")

	_, err := Load("")
	assert.EqualError(t, err, "missing HYPERPROOF_USERNAME in environment")

	t.Setenv("HYPERPROOF_USERNAME", "hpagent")
	_, err = Load("")
	assert.EqualError(t, err, "missing HYPERPROOF_PASSWORD in environment")

	t.Setenv("HYPERPROOF_PASSWORD", "s3cr3t!")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, auth.MethodBasic, cfg.AuthMethod)
}

func TestLoad_env_file(t *testing.T) {
	scrubEnv(t)

	envFile := filepath.Join(t.TempDir(), "hyperproof.env")
	content := "CLIENT_ID=fromfile\nCLIENT_SECRET=deadbeef\nHYPERPROOF_API_URL=https://api.hyperproof.test\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	cfg, err := Load(envFile)
	require.NoError(t, err)
	assert.Equal(t, "fromfile", cfg.ClientID)
	assert.Equal(t, "https://api.hyperproof.test", cfg.APIURL)
}

func TestLoad_env_file_does_not_override(t *testing.T) {
	scrubEnv(t)
	t.Setenv("CLIENT_ID", "fromenv")

	envFile := filepath.Join(t.TempDir(), "hyperproof.env")
	content := "CLIENT_ID=fromfile\nCLIENT_SECRET=deadbeef\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	cfg, err := Load(envFile)
	require.NoError(t, err)
	assert.Equal(t, "fromenv", cfg.ClientID)
}

func TestLoad_env_file_missing(t *testing.T) {
	scrubEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.env"))
	assert.ErrorContains(t, err, "could not load env file")
}

func TestConfig_Validate_api_url(t *testing.T) {
	cfg := Config{
		APIURL:     "api.hyperproof.app",
		AuthMethod: auth.MethodPassthrough,
	}

	err := cfg.Validate()
	assert.EqualError(t, err, `HYPERPROOF_API_URL is not absolute: "api.hyperproof.app"`)
}

func TestConfig_Authenticator(t *testing.T) {
	cfg := Config{
		ClientID:     "myclient",
		ClientSecret: "deadbeef",
		TokenURL:     DefaultTokenURL,
		AuthMethod:   auth.MethodOauth2,
	}

	a, err := cfg.Authenticator()
	require.NoError(t, err)
	require.IsType(t, &auth.Oauth2Authenticator{}, a)

	oa2a := a.(*auth.Oauth2Authenticator)
	assert.Equal(t, "myclient", oa2a.ClientID)
	assert.Equal(t, DefaultTokenURL, oa2a.TokenURL)

	cfg = Config{
		Username:   "hpagent",
		Password:   "s3cr3t!",
		AuthMethod: auth.MethodBasic,
	}

	a, err = cfg.Authenticator()
	require.NoError(t, err)
	require.IsType(t, &auth.BasicAuthenticator{}, a)

	cfg = Config{AuthMethod: auth.MethodPassthrough}

	a, err = cfg.Authenticator()
	require.NoError(t, err)

	header, err := a.EncodeHeader()
	require.NoError(t, err)
	assert.Empty(t, header)
}

func TestConfig_Authenticator_incomplete(t *testing.T) {
	cfg := Config{AuthMethod: auth.MethodOauth2}

	_, err := cfg.Authenticator()
	assert.EqualError(t, err, "missing client_id")
}

func TestConfig_Client(t *testing.T) {
	cfg := Config{AuthMethod: auth.MethodPassthrough}

	client, err := cfg.Client()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, client.HTTPClient.Timeout)

	cfg.Timeout = 30 * time.Second
	client, err = cfg.Client()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, client.HTTPClient.Timeout)
}

func TestConfig_service_URIs(t *testing.T) {
	cfg := Config{APIURL: "https://api.hyperproof.test"}

	assert.Equal(t, "https://api.hyperproof.test/v1/controls", cfg.ControlsURI())
	assert.Equal(t, "https://api.hyperproof.test/v1/proof", cfg.ProofURI())
	assert.Equal(t, "https://api.hyperproof.test/v1/labels", cfg.LabelsURI())

	cfg.APIURL = "https://api.hyperproof.test/"
	assert.Equal(t, "https://api.hyperproof.test/v1/controls", cfg.ControlsURI())
}
