// Package config manages user-level settings stored at ~/.rulekeep/config.yaml.
// It provides functions to load, read, and write configuration keys such as
// default output verbosity and the default rules directory.
package config
