// Copyright 2026 Contributors to the evidenceops project.
// SPDX-License-Identifier: Apache-2.0

// Package config assembles client configuration from the process
// environment, honoring a local .env file.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/evidenceops/hyperproof-apiclient/auth"
	"github.com/evidenceops/hyperproof-apiclient/common"
	"github.com/joho/godotenv"
)

const (
	// DefaultTokenURL is the production token endpoint.
	DefaultTokenURL = "https://accounts.hyperproof.app/oauth/token"

	// DefaultAPIURL is the production API base URL.
	DefaultAPIURL = "https://api.hyperproof.app"
)

// Config holds everything needed to construct authenticated service clients.
type Config struct {
	// ClientID and ClientSecret are the OAuth2 client credentials.
	ClientID     string
	ClientSecret string

	// TokenURL is the OAuth2 token endpoint.
	TokenURL string

	// APIURL is the base URL all service endpoints hang off.
	APIURL string

	// AuthMethod selects how requests get authenticated.
	AuthMethod auth.Method

	// Username and Password serve the basic method only.
	Username string
	Password string

	// CACerts are paths of extra CA bundles to trust.
	CACerts []string

	// Timeout overrides the default per-request timeout when positive.
	Timeout time.Duration
}

// Load builds a Config from the process environment. When envFile is
// non-empty, variables are first loaded from that file; otherwise a .env
// file in the current directory is honored when present. Variables already
// set in the environment win over the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("could not load env file: %w", err)
		}
	} else {
		_ = godotenv.Load()
	}

	cfg := Config{
		ClientID:     getEnv("CLIENT_ID", ""),
		ClientSecret: getEnv("CLIENT_SECRET", ""),
		TokenURL:     getEnv("HYPERPROOF_TOKEN_URL", DefaultTokenURL),
		APIURL:       getEnv("HYPERPROOF_API_URL", DefaultAPIURL),
		Username:     getEnv("HYPERPROOF_USERNAME", ""),
		Password:     getEnv("HYPERPROOF_PASSWORD", ""),
	}

	method := getEnv("HYPERPROOF_AUTH_METHOD", string(auth.MethodOauth2))
	if err := cfg.AuthMethod.Set(method); err != nil {
		return nil, err
	}

	if raw := getEnv("HYPERPROOF_CA_CERTS", ""); raw != "" {
		for _, p := range strings.Split(raw, ",") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.CACerts = append(cfg.CACerts, p)
			}
		}
	}

	if raw := getEnv("HYPERPROOF_TIMEOUT", ""); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid HYPERPROOF_TIMEOUT: %w", err)
		}
		cfg.Timeout = d
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that the configuration is complete enough to construct an
// authenticated client. Credential problems are caught here, before any
// network call is attempted.
func (o *Config) Validate() error {
	u, err := url.Parse(o.APIURL)
	if err != nil {
		return fmt.Errorf("malformed HYPERPROOF_API_URL: %w", err)
	}

	if !u.IsAbs() {
		return fmt.Errorf("HYPERPROOF_API_URL is not absolute: %q", o.APIURL)
	}

	switch o.AuthMethod {
	case auth.MethodOauth2:
		if o.ClientID == "" {
			return errors.New("missing CLIENT_ID in environment")
		}
		if o.ClientSecret == "" {
			return errors.New("missing CLIENT_SECRET in environment")
		}
		if o.TokenURL == "" {
			return errors.New("missing HYPERPROOF_TOKEN_URL in environment")
		}
	case auth.MethodBasic:
		if o.Username == "" {
			return errors.New("missing HYPERPROOF_USERNAME in environment")
		}
		if o.Password == "" {
			return errors.New("missing HYPERPROOF_PASSWORD in environment")
		}
	case auth.MethodPassthrough:
	default:
		return fmt.Errorf("unexpected auth method %q", o.AuthMethod)
	}

	return nil
}

// Authenticator constructs the authenticator selected by AuthMethod.
func (o *Config) Authenticator() (auth.IAuthenticator, error) {
	var (
		a   auth.IAuthenticator
		cfg map[string]interface{}
	)

	switch o.AuthMethod {
	case auth.MethodPassthrough:
		a = &auth.NullAuthenticator{}
		cfg = map[string]interface{}{}
	case auth.MethodBasic:
		a = &auth.BasicAuthenticator{}
		cfg = map[string]interface{}{
			"username": o.Username,
			"password": o.Password,
		}
	case auth.MethodOauth2:
		a = &auth.Oauth2Authenticator{}
		cfg = map[string]interface{}{
			"client_id":     o.ClientID,
			"client_secret": o.ClientSecret,
			"token_url":     o.TokenURL,
		}
	default:
		return nil, fmt.Errorf("unexpected auth method %q", o.AuthMethod)
	}

	if err := a.Configure(cfg); err != nil {
		return nil, err
	}

	return a, nil
}

// Client constructs the HTTP client implied by the configuration.
func (o *Config) Client() (*common.Client, error) {
	a, err := o.Authenticator()
	if err != nil {
		return nil, err
	}

	var client *common.Client

	if len(o.CACerts) > 0 {
		client, err = common.NewTLSClient(a, o.CACerts)
		if err != nil {
			return nil, err
		}
	} else {
		client = common.NewClient(a)
	}

	if o.Timeout > 0 {
		client.HTTPClient.Timeout = o.Timeout
	}

	return client, nil
}

// ControlsURI returns the controls collection endpoint under APIURL.
func (o *Config) ControlsURI() string {
	return o.apiPath("v1", "controls")
}

// ProofURI returns the proof collection endpoint under APIURL.
func (o *Config) ProofURI() string {
	return o.apiPath("v1", "proof")
}

// LabelsURI returns the labels collection endpoint under APIURL.
func (o *Config) LabelsURI() string {
	return o.apiPath("v1", "labels")
}

func (o *Config) apiPath(elems ...string) string {
	u, err := url.Parse(o.APIURL)
	if err != nil {
		return o.APIURL
	}

	return u.JoinPath(elems...).String()
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultVal
}
