// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 pswdapp

package client

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run executes the client command line and blocks until exit.
	Run(args []string) error
}
