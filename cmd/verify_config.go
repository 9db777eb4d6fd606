package cmd

import (
	"fmt"
	"time"

	internalApp "github.com/AnushaPriya2003/anusha/internal/app"
	"github.com/AnushaPriya2003/anusha/pkg/util"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type verifyFlags struct {
	config  string
	next    int
	storage bool
}

func init() {
	f := new(verifyFlags)

	var verifyCmd = &cobra.Command{
		Use:   "verify-config [-c config_file] [-n runs] [--storage]",
		Short: "Validate the config file and print the upcoming run times",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveConfig(f.config, false)
			if err != nil {
				return err
			}
			cfg, realpath, err := internalApp.LoadConfig(path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "config:      %s\n", realpath)
			fmt.Fprintf(out, "storage:     %s\n", cfg.Storage.Type)
			fmt.Fprintf(out, "database:    %s\n", cfg.Database.Path)
			fmt.Fprintf(out, "listen:      %s\n", cfg.Server.PrivateHttpListen)

			job := cfg.Job
			if job == nil {
				fmt.Fprintln(out, "job:         absent")
				return nil
			}
			state := "enabled"
			if job.Disabled {
				state = "disabled"
			}
			fmt.Fprintf(out, "job:         %s\n", state)
			fmt.Fprintf(out, "purge root:  %s (%d days)\n", job.PurgeRoot, job.NumberOfDaysPurge)
			fmt.Fprintf(out, "mapping:     %s\n", job.AssetURLMapping.String())

			normalized, err := util.NormalizeCron(job.SchedulerExpression)
			if err != nil {
				return err
			}
			schedule, err := util.ParseCron(job.SchedulerExpression)
			if err != nil {
				return err
			}
			loc, err := job.Location()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "schedule:    %s -> %s (%s)\n", job.SchedulerExpression, normalized, loc)

			next := time.Now().In(loc)
			for i := 0; i < f.next; i++ {
				next = schedule.Next(next)
				fmt.Fprintf(out, "  next run:  %s\n", next.Format(time.RFC3339))
			}

			if f.storage {
				return verifyStorage(cmd, f.config, job.PurgeRoot)
			}
			return nil
		},
	}

	rootCmd.AddCommand(verifyCmd)
	fs := verifyCmd.Flags()
	fs.StringVarP(&f.config, "config", "c", "", "config file")
	fs.IntVarP(&f.next, "next", "n", 5, "number of upcoming runs to print")
	fs.BoolVar(&f.storage, "storage", false, "also list the purge root through the configured storage")
}

// verifyStorage 通过配置的存储列出清理根目录
func verifyStorage(cmd *cobra.Command, config, root string) error {
	a, closer, err := loadApp(appOptions{config: config, console: true})
	if err != nil {
		return err
	}
	defer closer()

	resolver, err := a.Resolvers.Open(cmd.Context())
	if err != nil {
		return errors.Wrap(err, "open resource resolver")
	}
	defer resolver.Close()

	entries, err := resolver.Children(cmd.Context(), root)
	if err != nil {
		return errors.Wrapf(err, "list %s", root)
	}
	folders := 0
	for _, e := range entries {
		if e.IsFolder() {
			folders++
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "storage ok:  %d children, %d folders under %s\n", len(entries), folders, root)
	return nil
}
