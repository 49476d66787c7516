// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the qr-keeper command-line client runtime.
//
// It parses a subcommand and its flags and drives the server through an
// [adapter.ServerAdapter], writing results to the configured output.
package client
