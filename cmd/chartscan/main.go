// Package main provides the entry point for the chartscan CLI.
//
// chartscan inspects trading chart screenshots for colored indicator
// markers. It classifies pixels into fixed color categories with
// hand-tuned threshold rules, reports the most frequent matching colors
// and renders a side-by-side visualization of the matches.
//
// Usage:
//
//	chartscan scan <image>
//	chartscan scan --color purple --top 5 <image>
//
// See --help for all available options.
package main

// main is the entry point for chartscan.
func main() {
	Execute()
}
