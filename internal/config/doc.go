// Package config manages user-level settings stored at ~/.shmod/config.yaml.
// Values come from the config file and SHMOD_* environment variables (the
// environment wins). The file is checked against an embedded JSON schema;
// problems are reported to the caller as warnings rather than failures.
package config
