// SPDX-License-Identifier: MPL-2.0

// Package config handles foxcheck configuration using Viper and CUE.
//
// Every setting has a default that reproduces foxcheck's standard checks, so
// no file is needed. An optional foxcheck.cue at the extension root (or an
// explicit --config path) is validated against an embedded #Config schema
// and merged over the defaults.
package config
