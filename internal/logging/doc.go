// Package logger provides leveled logging for waypoint commands.
//
// Verbosity is controlled by two flags:
//
//   - --verbose: shows info messages
//   - --debug: shows info and debug messages
//
// Warnings and errors are always written to stderr.
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Loaded %d records from %s", n, path)
//
// Commands create a logger in the root PersistentPreRun.
package logger
