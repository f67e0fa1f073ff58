// Package configs manages waypoint configuration.
//
// Configuration is stored in TOML format at two levels:
//
//   - User config: <user config dir>/waypoint/config.toml
//   - Project config: .waypoint/config.toml, found by walking up from the
//     working directory
//
// The effective configuration is built in layers, each overriding the last:
// defaults, the user file, the project file, the environment
// (WAYPOINT_STORE, WAYPOINT_USER), and finally command-line flags applied by
// the caller.
//
//	[store]
//	path = "workflow_data.xlsx"
//	driver = "xlsx"
//	last_writer_wins = false
//
//	[attachments]
//	dir = "attachments"
//
//	[workflow]
//	clear_completion_on_regression = false
//
//	[session]
//	user = "admin"
//
// Relative paths resolve against the project root.
package configs
