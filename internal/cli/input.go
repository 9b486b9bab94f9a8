package cli

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/matzehuels/margins/pkg/dataset"
	"github.com/matzehuels/margins/pkg/pipeline"
)

// inputFlags selects the columns and seed used to load a dataset.
type inputFlags struct {
	xcol, ycol string
	seed       uint64
}

// loadDataset reads a dataset file. A built-in dataset name is accepted when
// no file of that name exists.
func loadDataset(arg string, in inputFlags) (*dataset.Dataset, error) {
	if _, err := os.Stat(arg); err != nil && slices.Contains(dataset.Names(), arg) {
		return dataset.Builtin(arg, in.seed)
	}
	return dataset.Load(arg, in.xcol, in.ycol)
}

// basePath derives the base output path from the output and input paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.png, .svg, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.ToLower(strings.TrimPrefix(ext, "."))] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPaths maps each format to the file it is written to. A single format
// with an explicit output path is written there verbatim.
func outputPaths(output, input string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" && filepath.Ext(output) != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}
