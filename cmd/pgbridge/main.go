// Copyright 2026 PgBridge Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"pgbridge/server/server"
)

func main() {
	if err := server.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "pgbridge: %v\n", err)
		os.Exit(1)
	}
}
