package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/AnushaPriya2003/anusha/internal/task"

	"github.com/spf13/cobra"
)

type historyFlags struct {
	config string
	task   string
	limit  int
}

func init() {
	f := new(historyFlags)

	var historyCmd = &cobra.Command{
		Use:   "history [-c config_file] [-t task] [-n limit]",
		Short: "Print recent job runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, closer, err := loadApp(appOptions{config: f.config, history: true, console: true})
			if err != nil {
				return err
			}
			defer closer()

			runs, err := a.JobRunRepo.List(cmd.Context(), f.task, f.limit)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "STARTED\tTRIGGER\tSTATUS\tDURATION\tDELETED\tRETAINED\tERROR")
			for _, r := range runs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
					r.StartedAt.Local().Format("2006-01-02 15:04:05"),
					r.Trigger, r.Status, r.Duration().Round(time.Millisecond),
					r.Purge.Deleted, r.Purge.Retained, r.Error)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(historyCmd)
	fs := historyCmd.Flags()
	fs.StringVarP(&f.config, "config", "c", "", "config file")
	fs.StringVarP(&f.task, "task", "t", task.PimCsvTaskName, "task name")
	fs.IntVarP(&f.limit, "limit", "n", 20, "number of runs")
}
