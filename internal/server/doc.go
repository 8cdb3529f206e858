// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the formdesk transport servers.
//
// It starts every enabled transport, waits for a stop signal and shuts all
// of them down within the configured timeout.
package server
