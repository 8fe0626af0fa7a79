// Package main provides the entry point for the launchdash CLI.
//
// launchdash serves an interactive dashboard over SpaceX Falcon 9 launch
// records: a success pie per launch site and a payload/outcome scatter
// filtered by a payload range.
//
// Usage:
//
//	launchdash serve
//	launchdash summary --site "KSC LC-39A"
//	launchdash export --out charts
//
// See --help for all available options.
package main

func main() {
	Execute()
}
