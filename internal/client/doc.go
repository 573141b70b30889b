// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 pswdapp

// Package client implements the command-line client application.
//
// It wires the service layer, background jobs and terminal prompts into a
// single process lifecycle: every command unlocks the session when it needs
// key material and the session is locked again before the process exits.
package client
