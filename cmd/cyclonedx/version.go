package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Build metadata, overridden at release time with
// -ldflags "-X main.Version=... -X main.GitCommit=... -X main.BuildDate=...".
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the release version along with the commit, build date, and toolchain it was built with.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Print(versionBanner())
	},
}

// versionBanner renders the multi-line version report.
func versionBanner() string {
	return fmt.Sprintf(`cyclonedx %s
  commit:     %s
  built:      %s
  go version: %s
  platform:   %s/%s
`, Version, GitCommit, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
