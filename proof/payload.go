// Copyright 2025 Contributors to the evidenceops project.
// SPDX-License-Identifier: Apache-2.0

package proof

import (
	"bytes"
	"fmt"
	"mime"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// formFieldProof is the form field name the API expects for the file part of
// an upload.
const formFieldProof = "proof"

// DefaultMediaType is used for a payload whose media type cannot be guessed
// from the file extension.
const DefaultMediaType = "application/octet-stream"

// Payload holds the content of an evidence file staged for upload.
type Payload struct {
	// Filename is the base name presented to the server.
	Filename string

	// ContentType is the media type of the file part.
	ContentType string

	// Data is the file content. Uploads are buffered whole in memory.
	Data []byte
}

// NewFilePayload reads the file at path into a Payload. When contentType is
// empty the media type is guessed from the file extension, defaulting to
// DefaultMediaType.
func NewFilePayload(path, contentType string) (*Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read proof file: %w", err)
	}

	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(path))
	}

	if contentType == "" {
		contentType = DefaultMediaType
	}

	return &Payload{
		Filename:    filepath.Base(path),
		ContentType: contentType,
		Data:        data,
	}, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// Encode builds the multipart/form-data request body for uploading the
// payload, preceded by the supplied extra form fields.  The returned content
// type carries the part boundary.
func (o Payload) Encode(fields map[string]string) ([]byte, string, error) {
	var buf bytes.Buffer

	w := multipart.NewWriter(&buf)

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := w.WriteField(name, fields[name]); err != nil {
			return nil, "", fmt.Errorf("encoding form field %q failed: %w", name, err)
		}
	}

	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		formFieldProof, quoteEscaper.Replace(o.Filename)))
	hdr.Set("Content-Type", o.ContentType)

	part, err := w.CreatePart(hdr)
	if err != nil {
		return nil, "", fmt.Errorf("encoding proof part failed: %w", err)
	}

	if _, err := part.Write(o.Data); err != nil {
		return nil, "", fmt.Errorf("encoding proof part failed: %w", err)
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("finalizing multipart body failed: %w", err)
	}

	return buf.Bytes(), w.FormDataContentType(), nil
}
