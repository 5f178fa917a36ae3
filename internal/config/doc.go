// Package config provides the run configuration built from CLI flags and the
// optional YAML configuration file with per-host request settings and named
// keyword presets.
package config
