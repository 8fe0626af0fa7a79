// Package config provides configuration structures and utilities for launchdash.
// It defines where launch data is read from, how the dashboard server listens,
// the payload slider bounds, and chart image sizes.
package config
