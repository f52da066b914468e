// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package commands defines the senatecount CLI.
//
// Commands
//
//   - run    Count one state from the AEC candidate list and its formal preferences file
//   - batch  Count every state in a manifest concurrently and tally seats by party
//
// # Output
//
// run ends with an "=== Elected ===" heading followed by one "Name (Party)"
// line per senator in order of election, so scripts can split on the
// heading. Logs go to stderr, as text on a terminal and JSON otherwise.
package commands
