// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from $XDG_CONFIG_HOME/vshell/config.cue (or the
// platform equivalent, or --config) and validated against the embedded
// config_schema.cue. VSHELL_* environment variables override file values,
// for example VSHELL_SSH_PORT for ssh.port.
package config
