package markdown

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/with-caer/codas/pkg/schema"
)

// ParseFile reads and parses a single coda document from disk.
func ParseFile(path string) (*schema.Coda, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Parse(string(data))
}

// ParseDir parses every ".md" file in a directory into a schema, skipping
// (and logging) any document that fails to parse rather than aborting the
// whole batch (spec §4.1: "unknown/malformed documents are skipped when
// parsing a directory"). The per-file failures are still collected and
// returned, aggregated with multierr, so callers can inspect or report them
// without the batch itself having failed.
func ParseDir(log *logrus.Entry, dir string) ([]*schema.Coda, error) {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var (
		codas []*schema.Coda
		errs  error
	)

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		path := filepath.Join(dir, entry.Name())

		coda, err := ParseFile(path)
		if err != nil {
			log.WithField("file", path).WithError(err).Warn("skipping malformed coda document")
			errs = multierr.Append(errs, err)

			continue
		}

		codas = append(codas, coda)
	}

	return codas, errs
}
