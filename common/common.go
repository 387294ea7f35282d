// Copyright 2025 Contributors to the evidenceops project.
// SPDX-License-Identifier: Apache-2.0

package common

import (
	"encoding/json"
	"net/http"
)

// MediaTypeJSON is the media type of the API's request and response bodies.
const MediaTypeJSON = "application/json"

func DecodeJSONBody(res *http.Response, j interface{}) error {
	defer res.Body.Close()

	return json.NewDecoder(res.Body).Decode(&j)
}
