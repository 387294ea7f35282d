// Copyright 2025 Contributors to the evidenceops project.
// SPDX-License-Identifier: Apache-2.0

/*
Package controls interacts with the Hyperproof controls API.

The user creates a Service object supplying the URL of the controls
collection endpoint and an authenticator for the API credentials:

	service, err := controls.NewService(
		"https://api.hyperproof.app/v1/controls",
		authenticator,
	)

List fetches the controls visible to the configured credentials:

	cs, err := service.List()

AddProof attaches an evidence file to a control, returning the proof
metadata record created by the server:

	p, err := service.AddProof(controlID, "report.json", "")

LinkLabel attaches an existing label to a control:

	err := service.LinkLabel(controlID, labelID)
*/
package controls
