package cmd

import (
	"fmt"
	"runtime"

	"github.com/AnushaPriya2003/anusha/internal/app"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
)

type versionOutput struct {
	app.VersionInfo
	Name      string `json:"name"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

func init() {
	var asJSON bool

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print out version info and exit. // 打印版本信息并退出。",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := versionOutput{
				VersionInfo: app.VersionInfo{Version: app.Version, GitTag: app.GitTag, BuildTime: app.BuildTime},
				Name:        app.Name,
				GoVersion:   runtime.Version(),
				Platform:    runtime.GOOS + "/" + runtime.GOARCH,
			}
			if asJSON {
				b, err := sonic.Marshal(out)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s v%s ( Git:%s ) BuildTime:%s %s %s\n",
				out.Name, out.Version, out.GitTag, out.BuildTime, out.GoVersion, out.Platform)
			return nil
		},
	}

	versionCmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	rootCmd.AddCommand(versionCmd)
}
