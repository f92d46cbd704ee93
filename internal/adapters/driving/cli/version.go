package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long: `Print the abacus version along with the Go toolchain and platform it
was built for. Use --short for the bare version string.`,
	Args: cobra.NoArgs,
	Run:  runVersion,
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "print only the version")
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, _ []string) {
	w := cmd.OutOrStdout()
	if versionShort {
		fmt.Fprintln(w, version)
		return
	}
	fmt.Fprintf(w, "abacus version %s\n", version)
	fmt.Fprintf(w, "built with %s for %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
