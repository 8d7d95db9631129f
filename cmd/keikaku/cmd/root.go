package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "keikaku",
	Short: "Keikaku interpreter",
	Long: `keikaku runs programs written in the Keikaku scripting language:
a dynamically-typed, indentation-structured language with generators,
entity/ascend inheritance, and match expressions.

Invoked with no subcommand and no arguments it falls into a read-eval-print
loop that runs each blank-line-terminated chunk of input against the same
interpreter "run" uses.`,
	Version: Version,
	RunE: func(_ *cobra.Command, args []string) error {
		if len(args) > 0 {
			return fmt.Errorf("unknown argument %q (did you mean: keikaku run %s)", args[0], args[0])
		}
		return runREPL()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
