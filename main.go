// Package main is the entry point for the cscoach CLI tool, which turns
// normalized CS2 demo events into gameplay gap analyses, cross-match
// aggregates and a rank estimate.
package main

import "github.com/pable/go-cs-coach/cmd"

func main() {
	cmd.Execute()
}
