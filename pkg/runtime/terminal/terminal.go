package terminal

import (
	"io"
	"os"

	"github.com/mkt-tools/ga-insight/pkg/runtime/terminal/commands"

	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	newService commands.ServiceFactory
	output     io.Writer
	rootCmd    *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	NewService commands.ServiceFactory
	Output     io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		newService: opts.NewService,
		output:     opts.Output,
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ga-insight",
		Short: "GA4 report generator",
	}

	cmd.AddCommand(commands.NewMonthlyCmd(cli.newService, cli.output))
	cmd.AddCommand(commands.NewWeeklyCmd(cli.newService, cli.output))

	return cmd
}
