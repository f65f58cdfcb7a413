package main

import (
	"fmt"
	"os"

	"github.com/mkt-tools/ga-insight/pkg/runtime/terminal"
	"github.com/mkt-tools/ga-insight/pkg/services/analytics"
)

func main() {
	cli := terminal.NewCLI(terminal.Options{
		NewService: analytics.NewReportBuilder,
		Output:     os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
