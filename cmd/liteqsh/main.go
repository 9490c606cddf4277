// liteqsh is an interactive SQL shell over the liteq façade, backed by
// the CGO-free modernc.org/sqlite driver.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	_ "modernc.org/sqlite"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var trace bool

	cmd := &cobra.Command{
		Use:   "liteqsh [database-file]",
		Short: "Interactive SQL shell over the liteq query façade",
		Long: `liteqsh opens a SQLite database (in-memory when no file is given)
and reads SQL statements interactively. Row-returning statements are
fetched and printed; everything else is executed and reported with its
rows-changed count. Classified failures are printed, never fatal.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if trace {
				cfg.Trace = true
			}

			dsn := ":memory:"
			if len(args) == 1 {
				dsn = args[0]
			}
			return runShell(dsn, cfg)
		},
	}

	cmd.Flags().BoolVar(&trace, "trace", false, "log each substituted statement before execution")
	return cmd
}
