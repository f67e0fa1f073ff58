// Package utils provides shared utility functions for the waypoint CLI.
//
// # Filesystem Utilities
//
//   - FindProjectRoot: walks up directories to find .waypoint
//   - FormatPaths: formats file paths for human-readable output
//
// # System Utilities
//
//   - GetUsername: returns the current system username, used as the last
//     fallback for the acting user
//
// # String Utilities
//
//   - IsValidEmail: checks the local-part@domain.tld shape
//   - Truncate: shortens long cells for table output
//
// # I/O Utilities
//
//   - ReadStdin: reads piped data, used by the admin import commands
//
// # Terminal Utilities
//
//   - IsTerminal: reports whether stdout is a terminal
package utils
