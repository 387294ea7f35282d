// Copyright 2025 Contributors to the evidenceops project.
// SPDX-License-Identifier: Apache-2.0
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// Oauth2Authenticator obtains bearer tokens from an OAuth2 token endpoint
// using the client credentials grant. The token is cached and only renewed
// once its expiry has passed.
type Oauth2Authenticator struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
	Scopes       []string

	Token *oauth2.Token
}

func (o *Oauth2Authenticator) Configure(cfg map[string]interface{}) error {
	decoded := struct {
		TokenURL     string                 `mapstructure:"token_url"`
		ClientID     string                 `mapstructure:"client_id"`
		ClientSecret string                 `mapstructure:"client_secret"`
		Scopes       []string               `mapstructure:"scopes"`
		Rest         map[string]interface{} `mapstructure:",remain"`
	}{}

	if err := mapstructure.Decode(cfg, &decoded); err != nil {
		return err
	}

	o.ClientID = decoded.ClientID
	o.ClientSecret = decoded.ClientSecret
	o.TokenURL = decoded.TokenURL
	o.Scopes = decoded.Scopes

	if err := o.validate(); err != nil {
		return err
	}

	if len(decoded.Rest) > 0 {
		var unexpected []string
		for k := range decoded.Rest {
			unexpected = append(unexpected, k)
		}
		return fmt.Errorf("unexpected fields in config: %s",
			strings.Join(unexpected, ", "))
	}

	return nil
}

func (o *Oauth2Authenticator) EncodeHeader() (string, error) {
	var err error

	if o.Token == nil || o.Token.Expiry.Before(time.Now()) {
		o.Token, err = o.obtainToken()
		if err != nil {
			return "", err
		}
	}

	header := fmt.Sprintf("Bearer %s", o.Token.AccessToken)

	return header, nil
}

func (o *Oauth2Authenticator) obtainToken() (*oauth2.Token, error) {
	if err := o.validate(); err != nil {
		return nil, err
	}

	// The token endpoint expects the client credentials form-encoded in
	// the request body rather than in an Authorization header.
	conf := &clientcredentials.Config{
		ClientID:     o.ClientID,
		ClientSecret: o.ClientSecret,
		TokenURL:     o.TokenURL,
		Scopes:       o.Scopes,
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	return conf.Token(context.Background())
}

func (o *Oauth2Authenticator) validate() error {
	if o.ClientID == "" {
		return errors.New("missing client_id")
	}

	if o.ClientSecret == "" {
		return errors.New("missing client_secret")
	}

	if o.TokenURL == "" {
		return errors.New("missing token_url")
	}

	if _, err := url.Parse(o.TokenURL); err != nil {
		return fmt.Errorf("invalid token_url: %w", err)
	}

	return nil
}
