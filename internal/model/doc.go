// Package model defines the core data structures used throughout launchdash.
//
// This package contains the following main types:
//   - LaunchRecord: One row of the launch data set
//   - SiteSelection: The dropdown value, either AllSites or a concrete site
//   - PayloadRange: The slider value, an inclusive payload mass interval
//   - PieSpec and ScatterSpec: Render-ready chart payloads
//
// The chart specs are serialized to JSON for the browser and consumed by the
// chart and report packages, so they carry no rendering behaviour themselves.
package model
