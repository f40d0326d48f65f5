package cmd

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pelagos-io/remora/pkg/core"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Run one cleanup pass and email the report",
	Run: func(cmd *cobra.Command, args []string) {
		_ = setLogLevel()

		disableDryRun, _ := cmd.Flags().GetBool("disable-dry-run")

		fmt.Println("")
		fmt.Println(" ____  _____ __  __  ___  ____      _    \n|  _ \\| ____|  \\/  |/ _ \\|  _ \\    / \\   \n| |_) |  _| | |\\/| | | | | |_) |  / _ \\  \n|  _ <| |___| |  | | |_| |  _ <  / ___ \\ \n|_| \\_\\_____|_|  |_|\\___/|_| \\_\\/_/   \\_\\")
		fmt.Println("")
		log.Infof("Starting Remora %s", GetCurrentVersion())

		core.StartRun(cmd, !disableDryRun)
	},
}

func init() {
	rootCmd.AddCommand(startCmd)

	startCmd.Flags().BoolP("disable-dry-run", "y", false, "Disable dry run mode")
	startCmd.Flags().StringSliceP("aws-regions", "a", nil, "Set AWS regions")
	startCmd.Flags().DurationP("max-age", "m", 168*time.Hour, "Images older than this are eligible for removal")
	startCmd.Flags().StringSliceP("tag-filters", "t", nil, "Only consider images carrying these key=value tags")
	startCmd.Flags().StringSliceP("excluded-tags", "x", nil, "Exempt images carrying these key=value tags from removal")
	startCmd.Flags().StringP("sender", "s", "", "Report sender email address")
	startCmd.Flags().StringSliceP("recipients", "r", nil, "Report recipient email addresses")
}
