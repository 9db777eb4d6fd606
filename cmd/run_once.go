package cmd

import (
	"errors"
	"fmt"
	"os/signal"
	"slices"
	"strings"
	"syscall"

	"github.com/AnushaPriya2003/anusha/internal/domain"
	"github.com/AnushaPriya2003/anusha/internal/task"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type runOnceFlags struct {
	config    string
	task      string
	noHistory bool
}

func init() {
	f := new(runOnceFlags)

	var runOnceCmd = &cobra.Command{
		Use:   "run-once [-c config_file] [-t task]",
		Short: "Run a task once in the foreground and exit",
		Long: `Run a task once in the foreground and exit.

A disabled or unconfigured job exits successfully without doing anything.
The exit status is non-zero when the run ends partial or failed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(task.Names(), f.task) {
				return fmt.Errorf("unknown task %q, available: %s", f.task, strings.Join(task.Names(), ", "))
			}
			a, closer, err := loadApp(appOptions{config: f.config, history: !f.noHistory})
			if err != nil {
				return err
			}
			defer closer()

			manager := task.NewManager(a)
			if err := manager.RegisterTasks(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			err = manager.Scheduler().RunNow(ctx, f.task, domain.TriggerCLI)
			switch {
			case errors.Is(err, domain.ErrDisabled), errors.Is(err, domain.ErrConfigurationAbsent):
				a.Logger().Info("nothing to do", zap.String("reason", err.Error()))
				return nil
			case errors.Is(err, task.ErrTaskNotFound):
				return fmt.Errorf("task %s is not enabled in this configuration", f.task)
			case err != nil:
				return &exitError{code: exitIncomplete, err: err}
			}
			return nil
		},
	}

	rootCmd.AddCommand(runOnceCmd)
	fs := runOnceCmd.Flags()
	fs.StringVarP(&f.config, "config", "c", "", "config file")
	fs.StringVarP(&f.task, "task", "t", task.PimCsvTaskName, "task name")
	fs.BoolVar(&f.noHistory, "no-history", false, "do not record the run in the history database")
}
