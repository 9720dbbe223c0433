// Touchline - Sports Analysis Content Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/touchline

// Command rankctl ranks a JSON pool of articles offline with the same engines
// the server uses.
//
//	rankctl rank --profile hotRightNow --limit 5 --file pool.json
//	rankctl related --slug afl-round-5-review --file pool.json
//	rankctl categories --file pool.json --json
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
