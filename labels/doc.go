// Copyright 2025 Contributors to the evidenceops project.
// SPDX-License-Identifier: Apache-2.0

/*
Package labels interacts with the Hyperproof labels API.

The user creates a Service object supplying the URL of the labels collection
endpoint and an authenticator for the API credentials:

	service, err := labels.NewService(
		"https://api.hyperproof.app/v1/labels",
		authenticator,
	)

Create makes a new label:

	label, err := service.Create("Q3 pentest", "Evidence from the Q3 penetration test")

AddProof attaches an evidence file to an existing label, returning the proof
metadata record created by the server:

	p, err := service.AddProof(labelID, "report.json", "")
*/
package labels
