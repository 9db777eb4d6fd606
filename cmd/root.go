package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// exitIncomplete 任务执行结束但状态为 partial 或 failed
const exitIncomplete = 2

// exitError 携带进程退出码的错误
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

var configDefault string
var rootCmd = &cobra.Command{
	Use:   "pim-csv-job",
	Short: "EMEA PIM CSV export job",
	Long: `Periodically delegates EMEA PIM CSV generation to the export service
and purges dated export folders older than the configured retention.`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func Execute(c string) {
	configDefault = c
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return 1
}
