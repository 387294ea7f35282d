// Copyright 2025 Contributors to the evidenceops project.
// SPDX-License-Identifier: Apache-2.0

/*
Package proof uploads evidence files to the Hyperproof proof API.

The user creates a Service object supplying the URL of the proof collection
endpoint and an authenticator for the API credentials:

	service, err := proof.NewService(
		"https://api.hyperproof.app/v1/proof",
		authenticator,
	)

A file is uploaded with Add. The file content travels as the "proof" part of
a multipart form, with the part media type guessed from the file extension
unless supplied explicitly:

	p, err := service.Add("report.json", "", nil)

Passing an ObjectRef attaches the new proof to an existing object on
creation:

	p, err := service.Add("report.json", "", &proof.ObjectRef{
		ID:   "aabbccdd-0011-2233-4455-667788990011",
		Type: "control",
	})

AddVersion uploads a fresh copy of a file as a new version of an existing
proof:

	p, err := service.AddVersion(proofID, "report.json", "")

On success the decoded proof metadata record is returned.
*/
package proof
