package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/margins/pkg/cache"
)

func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local render cache",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "clear",
			Short: "Remove all cached layouts and artifacts",
			Args:  cobra.NoArgs,
			RunE:  func(*cobra.Command, []string) error { return c.clearCache() },
		},
		&cobra.Command{
			Use:   "info",
			Short: "Show the cache location, entry count and size",
			Args:  cobra.NoArgs,
			RunE:  func(*cobra.Command, []string) error { return c.cacheInfo() },
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the cache directory",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				dir, err := cacheDir()
				if err != nil {
					return fmt.Errorf("get cache dir: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), dir)
				return nil
			},
		},
	)
	return cmd
}

// openCache opens the file cache if its directory exists. A nil cache and
// nil error mean nothing has been cached yet.
func openCache() (*cache.FileCache, error) {
	dir, err := cacheDir()
	if err != nil {
		return nil, fmt.Errorf("get cache dir: %w", err)
	}
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return cache.NewFileCache(dir)
}

func (c *CLI) clearCache() error {
	fc, err := openCache()
	if err != nil || fc == nil {
		if err == nil {
			printInfo("Cache is empty")
		}
		return err
	}
	n, err := fc.Clear()
	if err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	c.Logger.Debug("cache cleared", "dir", fc.Dir(), "entries", n)
	printSuccess("Cleared %d cached entries", n)
	printDetail("Directory: %s", fc.Dir())
	return nil
}

func (c *CLI) cacheInfo() error {
	fc, err := openCache()
	if err != nil {
		return err
	}
	if fc == nil {
		printInfo("Cache is empty")
		return nil
	}
	n, size, err := fc.Stats()
	if err != nil {
		return fmt.Errorf("read cache: %w", err)
	}
	printKeyValue("Directory", fc.Dir())
	printKeyValue("Entries", fmt.Sprintf("%d", n))
	printKeyValue("Size", formatBytes(size))
	return nil
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGT"[exp])
}
