// Package main is the entry point for the asympt CLI.
package main

import "asympt.dev/pkg/asympt/cmd"

func main() {
	cmd.Execute()
}
