// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks caller input for short links before it reaches
// the store.
//
// A [Validator] receives a request value and, optionally, the names of the
// fields to check. Violations are reported as the sentinel errors in
// errors.go so the transport layer can map them to 400 responses.
package validators

import "context"

// Validator validates one request value. When fields are given only those
// rules run; otherwise every rule that applies to the value's type runs.
type Validator interface {
	Validate(ctx context.Context, value any, fields ...string) error
}
