package main

import (
	"fmt"

	"bennypowers.dev/vhls/internal/version"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var versionVerbose bool

// versionCmd prints the build version
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the server version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if !versionVerbose {
			_, err := fmt.Fprintln(out, version.GetFullVersion())
			return err
		}
		enc := yaml.NewEncoder(out)
		defer func() { _ = enc.Close() }()
		return enc.Encode(version.GetBuildInfo())
	},
}

func init() {
	versionCmd.Flags().BoolVarP(&versionVerbose, "verbose", "v", false, "Print all build information")
}
