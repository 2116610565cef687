package cli

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/matzehuels/wordcloud/pkg/dataset"
)

// artifactWriteParams describes where rendered artifacts go.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	placed    int
	dropped   int
	cacheHit  bool
}

// writeArtifacts writes one file per format and prints a summary. A single
// format is written to output verbatim (or stdout for "-"); multiple formats
// share a base path.
func writeArtifacts(p artifactWriteParams) error {
	if len(p.formats) == 1 && p.output == "-" {
		_, err := os.Stdout.Write(p.artifacts[p.formats[0]])
		return err
	}

	paths := make([]string, 0, len(p.formats))
	for _, format := range p.formats {
		path := artifactPath(p.output, p.input, format, len(p.formats))
		if err := writeFile(path, p.artifacts[format]); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}

	printSuccess("Rendered %d file(s)", len(paths))
	for _, path := range paths {
		printFile(path)
	}
	printStats(p.placed, p.dropped, p.cacheHit)
	return nil
}

// artifactPath picks the output file for one format.
func artifactPath(output, input, format string, formats int) string {
	if formats == 1 && output != "" {
		return output
	}
	return basePath(output, input) + "." + format
}

func writeFile(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// openOutput opens path for writing, or stdout when path is empty or "-".
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// printReport lists what dataset normalization removed, if anything.
func printReport(r dataset.Report) {
	type line struct {
		n    int
		what string
	}
	lines := []line{
		{r.Merged, "duplicate words merged"},
		{r.EmptyText, "empty words skipped"},
		{r.Invalid, "invalid words skipped"},
		{r.NonPositive, "non-positive weights skipped"},
		{r.Truncated, "words cut by --top"},
	}
	lines = slices.DeleteFunc(lines, func(l line) bool { return l.n == 0 })
	for _, l := range lines {
		printDetail("%d %s", l.n, l.what)
	}
}
