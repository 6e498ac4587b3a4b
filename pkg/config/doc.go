// Package config provides configuration management for the sal server.
//
// Settings are loaded from a YAML file and overridden by environment
// variables, with per-attribute source tracking so `salctl config show`
// can report where each value came from.
//
// # Key Configuration Options
//
//   - SAL_BIND_ADDRESS / SAL_PORT: listen address (default 0.0.0.0:4998)
//   - SAL_WORKERS: in-flight request cap
//   - SAL_API_KEY: admin API key for token exchange (environment only)
//   - SAL_PUSHPLUS_TOKEN: PushPlus access token
//   - SAL_DRIVE_UID / SAL_DRIVE_TOKEN / SAL_DRIVE_DIRID: drive credentials
//   - SAL_STATE_FILE: state file location
//   - DATABASE_URL: optional PostgreSQL connection string
package config
