// Copyright 2025 Contributors to the evidenceops project.
// SPDX-License-Identifier: Apache-2.0

package proof

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/evidenceops/hyperproof-apiclient/auth"
	"github.com/evidenceops/hyperproof-apiclient/common"
	"github.com/google/uuid"
)

// Proof models the metadata record the API returns for an uploaded evidence
// file.
type Proof struct {
	// ID is the unique identifier assigned to the proof by the server.
	ID uuid.UUID `json:"id"`

	// Filename is the name the proof was uploaded under.
	Filename string `json:"filename"`

	// ContentType is the media type the server stored for the file.
	ContentType string `json:"contentType"`

	// Size is the stored file size in bytes.
	Size int64 `json:"size"`

	// Version counts up from 1 as new versions of the file are uploaded.
	Version int `json:"version"`

	// UploadedBy identifies the principal that performed the upload.
	UploadedBy string `json:"uploadedBy"`

	// UploadedOn is the server-side timestamp of the upload.
	UploadedOn time.Time `json:"uploadedOn"`
}

// ObjectRef identifies the object a freshly uploaded proof gets attached to.
type ObjectRef struct {
	ID   string
	Type string
}

// Service is the primary interface to the proof API.
type Service struct {
	// Client is the underlying client used for HTTP requests.
	Client *common.Client

	// EndPointURI is the proof collection URL. Individual operations
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

// SetEndpointURI sets the URI of the proof collection endpoint.
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

// Add uploads the file at path as a new standalone proof. When object is not
// nil the proof gets attached to the referenced object on creation. An empty
// contentType means the media type is guessed from the file extension.
func (o *Service) Add(path, contentType string, object *ObjectRef) (*Proof, error) {
	fields := map[string]string{}

	if object != nil {
		if object.ID == "" {
			return nil, errors.New("no object id supplied")
		}
		if object.Type == "" {
			return nil, errors.New("no object type supplied")
		}
		fields["objectId"] = object.ID
		fields["objectType"] = object.Type
	}

	return Upload(o.Client, o.EndPointURI, path, contentType, fields)
}

// AddVersion uploads the file at path as a new version of the proof with the
// supplied id.
func (o *Service) AddVersion(proofID, path, contentType string) (*Proof, error) {
	if proofID == "" {
		return nil, errors.New("no proof id supplied")
	}

	return Upload(o.Client, o.EndPointURI.JoinPath(proofID, "versions"), path, contentType, nil)
}

// Upload reads the file at path and POSTs it to uri as multipart form data,
// alongside any extra form fields. The decoded proof metadata record is
// returned on success.
func Upload(
	client *common.Client,
	uri *url.URL,
	path string,
	contentType string,
	fields map[string]string,
) (*Proof, error) {
	payload, err := NewFilePayload(path, contentType)
	if err != nil {
		return nil, err
	}

	body, ct, err := payload.Encode(fields)
	if err != nil {
		return nil, err
	}

	res, err := client.PostResource(body, ct, common.MediaTypeJSON, uri.String())
	if err != nil {
		return nil, fmt.Errorf("post request failed: %w", err)
	}

	if err := common.CheckResponse(res, http.StatusCreated, http.StatusOK); err != nil {
		return nil, err
	}

	return FromResponse(res)
}

// FromResponse decodes the proof metadata record carried in an upload
// endpoint response.
func FromResponse(res *http.Response) (*Proof, error) {
	if res.ContentLength == 0 {
		return nil, errors.New("empty body")
	}

	var p Proof

	if err := common.DecodeJSONBody(res, &p); err != nil {
		return nil, fmt.Errorf("failure decoding proof: %w", err)
	}

	return &p, nil
}
