// Package confloader provides configuration loading for SessGate.
//
// This package implements a flexible configuration loader that supports
// multiple sources using koanf as the underlying library.
//
// Priority (highest to lowest):
//
//  1. Command-line flags (merged by the caller via LoadMap)
//  2. Environment variables (SESSGATE_ prefix)
//  3. Configuration file (YAML)
//  4. Default values
//
// A companion Watcher reloads on config file changes, used for runtime
// log level adjustment.
package confloader
