package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/with-caer/codas/pkg/generate"
	"github.com/with-caer/codas/pkg/markdown"
	"github.com/with-caer/codas/pkg/schema"
)

var generateCmd = &cobra.Command{
	Use:   "generate [flags] document_or_dir",
	Short: "Generate target-language bindings from a coda document or directory.",
	Long: `Generate reads one Markdown coda document (or every ".md" document in a
directory) and writes generated bindings under <output>/<target>/<basename>.<ext>,
one subdirectory per requested target.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}

		targets := GetString(cmd, "target")
		output := GetString(cmd, "output")

		gens, err := resolveTargets(targets)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		codas, basenames, err := loadCodas(args[0])
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		if err := writeGenerated(output, gens, codas, basenames); err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
	},
}

func resolveTargets(flag string) (map[string]generate.Generator, error) {
	all := generate.Targets()

	if flag == "all" {
		return all, nil
	}

	selected := make(map[string]generate.Generator)

	for _, name := range strings.Split(flag, ",") {
		name = strings.TrimSpace(name)

		gen, ok := all[name]
		if !ok {
			return nil, fmt.Errorf("unknown generation target %q", name)
		}

		selected[name] = gen
	}

	return selected, nil
}

// loadCodas loads either a single document or every document in a
// directory, returning each parsed coda alongside the basename its output
// files should use.
func loadCodas(path string) ([]*schema.Coda, []string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, err
	}

	if !info.IsDir() {
		coda, err := markdown.ParseFile(path)
		if err != nil {
			return nil, nil, err
		}

		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

		return []*schema.Coda{coda}, []string{base}, nil
	}

	log := logrus.WithField("dir", path)

	codas, err := markdown.ParseDir(log, path)
	if err != nil {
		log.WithError(err).Warn("one or more documents failed to parse")
	}

	basenames := make([]string, len(codas))
	for i, coda := range codas {
		basenames[i] = strings.ToLower(coda.Name)
	}

	return codas, basenames, nil
}

func writeGenerated(output string, gens map[string]generate.Generator, codas []*schema.Coda, basenames []string) error {
	for i, coda := range codas {
		for target, gen := range gens {
			source, err := gen.Generate(coda)
			if err != nil {
				return fmt.Errorf("%s: %w", basenames[i], err)
			}

			dir := filepath.Join(output, target)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}

			path := filepath.Join(dir, basenames[i]+"."+gen.Extension())
			if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
				return err
			}

			logrus.WithField("path", path).Debug("wrote generated source")
		}
	}

	return nil
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringP("target", "t", "all", "comma-separated generation targets, or \"all\"")
	generateCmd.Flags().StringP("output", "o", ".", "output directory root")
}
