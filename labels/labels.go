// Copyright 2025 Contributors to the evidenceops project.
// SPDX-License-Identifier: Apache-2.0

package labels

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/evidenceops/hyperproof-apiclient/auth"
	"github.com/evidenceops/hyperproof-apiclient/common"
	"github.com/evidenceops/hyperproof-apiclient/proof"
)

// Service is the primary interface to the labels API.
type Service struct {
	// Client is the underlying client used for HTTP requests.
	Client *common.Client

	// EndPointURI is the labels collection URL. Individual operations
	// endpoints are relative to this.
	EndPointURI *url.URL
}

// NewService creates a new Service instance using the provided endpoint URI
// and the default HTTP client with the supplied authenticator.
func NewService(uri string, a auth.IAuthenticator) (*Service, error) {
	o := Service{Client: common.NewClient(a)}

	if err := o.SetEndpointURI(uri); err != nil {
		return nil, err
	}

	return &o, nil
}

// NewTLSService creates a new Service instance like NewService, additionally
// trusting the CA certs found at the supplied paths.
func NewTLSService(uri string, a auth.IAuthenticator, certPaths []string) (*Service, error) {
	o := Service{}

	if err := o.SetEndpointURI(uri); err != nil {
		return nil, err
	}

	if o.EndPointURI.Scheme != "https" {
		return nil, fmt.Errorf("expected HTTPS scheme in URI %q", uri)
	}

	client, err := common.NewTLSClient(a, certPaths)
	if err != nil {
		return nil, err
	}

	o.Client = client

	return &o, nil
}

// NewInsecureTLSService creates a new Service instance like NewService,
// except the server's certificate chain is not verified.
func NewInsecureTLSService(uri string, a auth.IAuthenticator) (*Service, error) {
	o := Service{}

	if err := o.SetEndpointURI(uri); err != nil {
		return nil, err
	}

	if o.EndPointURI.Scheme != "https" {
		return nil, fmt.Errorf("expected HTTPS scheme in URI %q", uri)
	}

	o.Client = common.NewInsecureTLSClient(a)

	return &o, nil
}

// SetClient sets the HTTP(s) client connection configuration
func (o *Service) SetClient(client *common.Client) error {
	if client == nil {
		return errors.New("no client supplied")
	}
	o.Client = client
	return nil
}

// SetEndpointURI sets the URI of the labels collection endpoint.
func (o *Service) SetEndpointURI(uri string) error {
	u, err := url.Parse(uri)
	if err != nil {
		return fmt.Errorf("malformed URI: %w", err)
	}

	if !u.IsAbs() {
		return fmt.Errorf("URI is not absolute: %q", uri)
	}

	o.EndPointURI = u

	return nil
}

// Create makes a new label with the supplied name and description.
func (o *Service) Create(name, description string) (*Label, error) {
	if name == "" {
		return nil, errors.New("no label name supplied")
	}

	reqBody, err := json.Marshal(&labelRequest{
		Name:        name,
		Description: description,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding label request failed: %w", err)
	}

	res, err := o.Client.PostResource(
		reqBody,
		common.MediaTypeJSON,
		common.MediaTypeJSON,
		o.EndPointURI.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("post request failed: %w", err)
	}

	if err := common.CheckResponse(res, http.StatusCreated, http.StatusOK); err != nil {
		return nil, err
	}

	return labelFromResponse(res)
}

// AddProof uploads the file at path as evidence attached to the label with
// the supplied id. An empty contentType means the media type is guessed from
// the file extension.
func (o *Service) AddProof(labelID, path, contentType string) (*proof.Proof, error) {
	if labelID == "" {
		return nil, errors.New("no label id supplied")
	}

	postURI := o.EndPointURI.JoinPath(labelID, "proof")

	return proof.Upload(o.Client, postURI, path, contentType, nil)
}

type labelRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func labelFromResponse(res *http.Response) (*Label, error) {
	if res.ContentLength == 0 {
		return nil, errors.New("empty body")
	}

	var label Label

	if err := common.DecodeJSONBody(res, &label); err != nil {
		return nil, fmt.Errorf("failure decoding label: %w", err)
	}

	return &label, nil
}
