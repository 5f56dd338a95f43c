package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Version is filled in when building with a release pipeline, matching the
// teacher's pattern of leaving an empty var for "go install" builds
// (pkg/cmd/root.go).
var Version string

var rootCmd = &cobra.Command{
	Use:   "codas",
	Short: "Parse, validate, and generate code from coda schema documents.",
	Long:  "codas reads Markdown-defined data-interchange schemas and generates wire codecs and bindings for them.",
}

// Execute runs the root command; each subcommand registers itself with
// rootCmd in its own init function. Called once by cmd/codas/main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")

	logrus.SetFormatter(&logrus.TextFormatter{
		ForceColors:   term.IsTerminal(int(os.Stdout.Fd())),
		FullTimestamp: false,
	})

	cobra.OnInitialize(func() {
		if GetFlag(rootCmd, "verbose") {
			logrus.SetLevel(logrus.DebugLevel)
		}
	})
}
