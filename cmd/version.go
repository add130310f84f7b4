package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/terappia/terapp/internal/selfupdate"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("terapp", version)

		check, _ := cmd.Flags().GetBool("check")
		if !check {
			return nil
		}

		res, err := selfupdate.NewChecker().Check(cmd.Context(), &selfupdate.CheckInput{Version: version})
		if errors.Is(err, selfupdate.ErrDevBuild) {
			fmt.Println("Development build, skipping update check.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("check for updates: %w", err)
		}

		if res.UpdateAvailable {
			fmt.Printf("A new version is available: %s\n%s\n", res.LatestVersion, res.ReleaseURL)
		} else {
			fmt.Println("You are running the latest version.")
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().Bool("check", false, "Check GitHub for a newer release")
}
