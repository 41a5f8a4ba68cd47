// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pedro Verardo

// Package app contains shared application-layer constants used across the
// skinone server handlers and middleware.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies or log entries to describe the outcome of an operation.
// Keeping them in one place ensures consistent wording throughout the API.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails basic validation (e.g. missing required fields).
	MsgInvalidDataProvided = "invalid data provided"

	// MsgValidationFailed is returned together with a field-keyed error map
	// when one or more request fields fail validation.
	MsgValidationFailed = "validation failed"

	// MsgInvalidEmailPassword is returned when the supplied email/password
	// combination does not match any existing user record.
	MsgInvalidEmailPassword = "invalid email/password"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgAuthenticationRequired is returned when a protected endpoint is
	// called without a usable bearer token.
	MsgAuthenticationRequired = "authentication required"

	// MsgTokenIsExpiredOrInvalid is returned when a JWT bearer token is
	// either expired or cannot be verified (e.g. wrong signature).
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgAccountDeactivated is returned when a syntactically valid token
	// resolves to a user whose account has been deactivated.
	MsgAccountDeactivated = "account is deactivated"

	// MsgEmailAlreadyExists is returned when a registration attempt is
	// rejected because the requested email is already in use.
	MsgEmailAlreadyExists = "email already exists"

	// MsgAccessDenied is returned when the authenticated user attempts to
	// access or modify a resource that requires privileges they do not hold.
	MsgAccessDenied = "access denied"

	// MsgAdminRequired is returned when a non-staff user calls an
	// administrator-only endpoint.
	MsgAdminRequired = "administrator privileges required"

	// MsgImageNotFound is returned when an operation targets an image record
	// that does not exist.
	MsgImageNotFound = "image not found"

	// MsgClassificationNotFound is returned when an operation targets a
	// classification record that does not exist.
	MsgClassificationNotFound = "classification not found"

	// MsgNoImageProvided is returned when an upload request contains no
	// image payload at all.
	MsgNoImageProvided = "no image file provided"

	// MsgUserNotFound is returned when a verified token references a user
	// record that no longer exists.
	MsgUserNotFound = "user not found"
)
