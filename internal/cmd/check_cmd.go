package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/with-caer/codas/pkg/markdown"
)

// checkCmd parses a coda document (or directory of them) and reports
// diagnostics without generating anything — mirrors the teacher's
// pkg/cmd/check in shape (parse, report, exit nonzero on failure) though
// over schema documents instead of constraint traces.
var checkCmd = &cobra.Command{
	Use:   "check [flags] document_or_dir",
	Short: "Parse a coda document (or directory) and report diagnostics.",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}

		info, err := os.Stat(args[0])
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}

		var errs error

		if info.IsDir() {
			log := logrus.WithField("dir", args[0])

			codas, err := markdown.ParseDir(log, args[0])
			errs = err

			fmt.Printf("parsed %d coda document(s)\n", len(codas))
		} else if strings.HasSuffix(args[0], ".md") {
			_, err := markdown.ParseFile(args[0])
			errs = err
		} else {
			fmt.Println("not a Markdown document:", args[0])
			os.Exit(1)
		}

		if errs != nil {
			for _, e := range multierr.Errors(errs) {
				fmt.Println(filepath.Base(args[0]) + ": " + e.Error())
			}

			os.Exit(1)
		}

		fmt.Println("ok")
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
