// main is the entry point for the jupiter CLI.
package main

import (
	"github.com/StephanieJJ/jupiter-audit/cmd"
	"github.com/StephanieJJ/jupiter-audit/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Command failed", err)
	}
}
