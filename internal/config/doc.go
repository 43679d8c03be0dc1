// Package config provides user settings for can-tracetool.
//
// Settings are stored in a YAML file that follows OS-specific conventions
// for its location:
//   - Linux: $XDG_CONFIG_HOME/cantrace/config.yaml or $HOME/.config/cantrace/config.yaml
//   - macOS: $HOME/.config/cantrace/config.yaml
//   - Windows: %LOCALAPPDATA%\cantrace\config.yaml
//
// An explicit file may be given with --config; files ending in .toml are
// decoded as TOML, everything else as YAML:
//
//	# ~/.config/cantrace/config.yaml
//	version: 1
//	format: table
//	workers: 4
//	limit: 200
//	show_rejects: true
//
// A missing default file is not an error; Load returns the built-in
// defaults. Command-line flags override file values.
package config
