package cmd

import (
	"fmt"
	"io"

	"github.com/AnushaPriya2003/anusha/internal/app"
	"github.com/AnushaPriya2003/anusha/internal/domain"
	"github.com/AnushaPriya2003/anusha/pkg/util"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type purgeFlags struct {
	config string
	root   string
	days   int
	dryRun bool
}

func init() {
	f := new(purgeFlags)

	var purgeCmd = &cobra.Command{
		Use:   "purge [-c config_file] [--root path] [--days n] [--dry-run]",
		Short: "Delete dated export folders older than the retention and exit",
		Long: `Delete YYYY-MM-DD folders under the purge root whose date is before
today minus the retention in days. Runs even when the job is disabled.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, closer, err := loadApp(appOptions{config: f.config, console: true})
			if err != nil {
				return err
			}
			defer closer()

			root, days := app.DefaultPurgeRoot, 30
			if job := a.Config().Job; job != nil {
				root, days = job.PurgeRoot, job.NumberOfDaysPurge
			}
			if cmd.Flags().Changed("root") {
				root = f.root
			}
			if cmd.Flags().Changed("days") {
				days = f.days
			}
			if days < 0 {
				return errors.Errorf("--days must not be negative, got %d", days)
			}

			resolver, err := a.Resolvers.Open(cmd.Context())
			if err != nil {
				return errors.Wrap(err, "open resource resolver")
			}
			defer resolver.Close()

			report := a.NewPurgeService(f.dryRun).Purge(cmd.Context(), resolver, root, days)
			printPurgeReport(cmd.OutOrStdout(), root, &report)
			if report.Failed() {
				return errors.New("purge finished with errors")
			}
			return nil
		},
	}

	rootCmd.AddCommand(purgeCmd)
	fs := purgeCmd.Flags()
	fs.StringVarP(&f.config, "config", "c", "", "config file")
	fs.StringVar(&f.root, "root", "", "purge root, defaults to job.purge-root")
	fs.IntVar(&f.days, "days", 0, "retention in days, defaults to job.number-of-days-purge")
	fs.BoolVar(&f.dryRun, "dry-run", false, "only log what would be deleted")
}

func printPurgeReport(w io.Writer, root string, r *domain.PurgeReport) {
	verb := "deleted"
	if r.DryRun {
		verb = "would delete"
	}
	fmt.Fprintf(w, "purge root:  %s\n", root)
	fmt.Fprintf(w, "cutoff:      %s\n", r.Cutoff.Format(util.DateLayout))
	if r.RootMissing {
		fmt.Fprintln(w, "root does not exist, nothing to purge")
		return
	}
	if r.ListError != nil {
		fmt.Fprintf(w, "list failed: %v\n", r.ListError)
		return
	}
	fmt.Fprintf(w, "%-12s %d\n", verb+":", r.Deleted)
	fmt.Fprintf(w, "%-12s %d\n", "retained:", r.Retained)
	fmt.Fprintf(w, "%-12s %d\n", "skipped:", r.Skipped)
	fmt.Fprintf(w, "%-12s %d\n", "gone:", r.Gone)
	fmt.Fprintf(w, "%-12s %d\n", "bad names:", r.ParseErrors)
	fmt.Fprintf(w, "%-12s %d\n", "failed:", r.DeleteErrors)
}
