// Package main is the entry point for the nbgrade CLI.
package main

import "nbgrade.dev/pkg/nbgrade/cmd"

func main() {
	cmd.Execute()
}
