package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jbass698-121/aveva-diagram-style/pkg/cache"
	"github.com/jbass698-121/aveva-diagram-style/pkg/config"
)

func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or empty the local pipeline cache",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "clear",
			Short: "Delete every entry in the file cache",
			Args:  cobra.NoArgs,
			RunE:  func(*cobra.Command, []string) error { return c.clearCache() },
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the file cache directory",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				dir, err := c.cacheDir()
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), dir)
				return err
			},
		},
	)
	return cmd
}

func (c *CLI) clearCache() error {
	if b := c.cfg.Cache.Backend; b != "" && b != config.CacheFile {
		printWarning("Cache backend is %q; only the file cache can be cleared here", b)
		return nil
	}
	dir, err := c.cacheDir()
	if err != nil {
		return err
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return err
	}
	n, err := fc.Clear()
	if err != nil {
		return fmt.Errorf("clear %s: %w", fc.Dir(), err)
	}
	if n == 0 {
		printInfo("Cache is already empty")
		return nil
	}
	printSuccess("Removed %d cached entries", n)
	printDetail("Directory: %s", fc.Dir())
	return nil
}
