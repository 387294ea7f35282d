// Copyright 2025 Contributors to the evidenceops project.
// SPDX-License-Identifier: Apache-2.0

package common

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/evidenceops/hyperproof-apiclient/auth"
)

// Client holds configuration data associated with the HTTP(s) session
type Client struct {
	HTTPClient http.Client

	// Auth writes the Authorization header for each request. A nil Auth
	// leaves requests unauthenticated.
	Auth auth.IAuthenticator
}

// NewClient instantiates a new Client using the supplied authenticator
func NewClient(a auth.IAuthenticator) *Client {
	return &Client{
		HTTPClient: http.Client{
			Timeout: 5 * time.Second,
		},
		Auth: a,
	}
}

// NewTLSClient instantiates a new Client like NewClient, additionally
// trusting the CA certs found at the supplied paths.
func NewTLSClient(a auth.IAuthenticator, certPaths []string) (*Client, error) {
	transport, err := auth.NewTLSTransport(certPaths)
	if err != nil {
		return nil, err
	}

	client := NewClient(a)
	client.HTTPClient.Transport = transport

	return client, nil
}

// NewInsecureTLSClient instantiates a new Client like NewClient, except the
// server's certificate chain is not verified.
func NewInsecureTLSClient(a auth.IAuthenticator) *Client {
	client := NewClient(a)
	client.HTTPClient.Transport = auth.NewInsecureTLSTransport()

	return client
}

// GetResource sends a GET request to uri, asking for the accept media type
func (c Client) GetResource(accept, uri string) (*http.Response, error) {
	req, err := http.NewRequest("GET", uri, nil)
	if err != nil {
		return nil, fmt.Errorf("GET %q, request creation failed: %w", uri, err)
	}

	req.Header.Set("Accept", accept)

	return c.do(req)
}

// PostResource sends body to uri as a POST request with the ct content type,
// asking for the accept media type
func (c Client) PostResource(body []byte, ct, accept, uri string) (*http.Response, error) {
	req, err := http.NewRequest("POST", uri, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("POST %q, request creation failed: %w", uri, err)
	}

	req.Header.Set("Content-Type", ct)
	req.Header.Set("Accept", accept)

	return c.do(req)
}

// PostEmptyResource sends a bodiless POST request to uri
func (c Client) PostEmptyResource(accept, uri string) (*http.Response, error) {
	req, err := http.NewRequest("POST", uri, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("POST %q, request creation failed: %w", uri, err)
	}

	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	return c.do(req)
}

func (c Client) DeleteResource(uri string) error {
	req, err := http.NewRequest("DELETE", uri, nil)
	if err != nil {
		return fmt.Errorf("DELETE %q, request creation failed: %w", uri, err)
	}

	res, err := c.do(req)
	if err != nil {
		return err
	}

	// Acceptable response codes are 200, 202 and 204
	switch res.StatusCode {
	case http.StatusOK, http.StatusAccepted, http.StatusNoContent:
		return nil
	default:
		return fmt.Errorf("DELETE %q, response has unexpected status: %s", uri, res.Status)
	}
}

func (c Client) do(req *http.Request) (*http.Response, error) {
	if err := c.setAuthHeader(req); err != nil {
		return nil, err
	}

	hc := &c.HTTPClient

	res, err := hc.Do(req)
	if err != nil {
		return nil, err
	}

	return res, nil
}

func (c Client) setAuthHeader(req *http.Request) error {
	if c.Auth == nil {
		return nil
	}

	header, err := c.Auth.EncodeHeader()
	if err != nil {
		return fmt.Errorf("could not set auth header: %w", err)
	}

	if header != "" {
		req.Header.Set("Authorization", header)
	}

	return nil
}
