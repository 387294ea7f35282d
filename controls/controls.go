// Copyright 2025 Contributors to the evidenceops project.
// SPDX-License-Identifier: Apache-2.0

package controls

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

// Service is the primary interface to the controls API.
type Service struct {
	// Client is the underlying client used for HTTP requests.
	Client *common.Client

	// EndPointURI is the controls collection URL. Individual operations
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

// SetEndpointURI sets the URI of the controls collection endpoint.
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

// List fetches the controls visible to the configured credentials.
func (o *Service) List() ([]*Control, error) {
	res, err := o.Client.GetResource(common.MediaTypeJSON, o.EndPointURI.String())
	if err != nil {
		return nil, fmt.Errorf("get request failed: %w", err)
	}

	if err := common.CheckResponse(res, http.StatusOK); err != nil {
		return nil, err
	}

	return controlsFromResponse(res)
}

// AddProof uploads the file at path as evidence attached to the control with
// the supplied id. An empty contentType means the media type is guessed from
// the file extension.
func (o *Service) AddProof(controlID, path, contentType string) (*proof.Proof, error) {
	if controlID == "" {
		return nil, errors.New("no control id supplied")
	}

	postURI := o.EndPointURI.JoinPath(controlID, "proof")

	return proof.Upload(o.Client, postURI, path, contentType, nil)
}

// LinkLabel attaches the label with the supplied id to the control with the
// supplied id.
func (o *Service) LinkLabel(controlID, labelID string) error {
	if controlID == "" {
		return errors.New("no control id supplied")
	}

	if labelID == "" {
		return errors.New("no label id supplied")
	}

	postURI := o.EndPointURI.JoinPath(controlID, "labels", labelID)

	res, err := o.Client.PostEmptyResource(common.MediaTypeJSON, postURI.String())
	if err != nil {
		return fmt.Errorf("post request failed: %w", err)
	}

	if err := common.CheckResponse(res, http.StatusOK, http.StatusCreated, http.StatusNoContent); err != nil {
		return err
	}

	return nil
}

// controlsFromResponse decodes the controls listing. The endpoint has
// returned both a bare array and an envelope with a data member over time,
// so both shapes are accepted.
func controlsFromResponse(res *http.Response) ([]*Control, error) {
	if res.ContentLength == 0 {
		return nil, errors.New("empty body")
	}

	var raw json.RawMessage

	if err := common.DecodeJSONBody(res, &raw); err != nil {
		return nil, fmt.Errorf("failure decoding controls: %w", err)
	}

	var controls []*Control
	if err := json.Unmarshal(raw, &controls); err == nil {
		return controls, nil
	}

	var envelope struct {
		Data []*Control `json:"data"`
	}

	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("failure decoding controls: %w", err)
	}

	return envelope.Data, nil
}
