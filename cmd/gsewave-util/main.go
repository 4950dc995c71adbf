package main

import (
	"os"

	"github.com/seisio/gsewave/cmd/gsewave-util/convert"
	"github.com/seisio/gsewave/cmd/gsewave-util/inspect"
	"github.com/seisio/gsewave/cmd/gsewave-util/verify"
	"github.com/spf13/cobra"
)

var rootFlags = struct {
	profile     string
	profilePath string
}{}

var rootCmd = &cobra.Command{
	Use:   "gsewave-util",
	Short: "GSE Waveform File Utility",
}

func init() {
	rootCmd.InitDefaultHelpCmd()

	rootCmd.PersistentFlags().StringVar(&rootFlags.profile, "profile", "", "the type of profile to record")
	rootCmd.PersistentFlags().StringVar(&rootFlags.profilePath, "profilepath", "", "path for the profile")

	rootCmd.AddCommand(inspect.NewCommand())
	rootCmd.AddCommand(verify.NewCommand())
	rootCmd.AddCommand(convert.NewCommand())
}

func main() {
	var prof interface{ Stop() }

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if rootFlags.profile != "" {
			prof = startProfile(rootFlags.profile, rootFlags.profilePath)
		}
	}
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if prof != nil {
			prof.Stop()
		}
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
