// Package cmd is the codas CLI, structured the way the teacher splits its
// own CLI: one cobra.Command per subcommand file, a shared rootCmd, and a
// handful of Get* flag-reading helpers that exit with a fixed code on a
// cobra error that should never actually occur (pkg/cmd/util.go).
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// GetFlag gets an expected bool flag, or exits if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetString gets an expected string flag, or exits if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}
