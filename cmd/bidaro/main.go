// Copyright (c) 2026 Bidaro. All rights reserved.
// Author: minh.tranvo.dev@gmail.com

// Command bidaro is the headless storefront client for the Bidaro platform.
//
// # Startup Sequence
//
//  1. Initialize structured logger (stderr, JSON).
//  2. Parse the command line.
//  3. Each command loads configuration, wires the component graph, and
//     bootstraps the session from the durable credential store.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"os"

	"github.com/minhtranvo/bidaro/cmd/bidaro/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
