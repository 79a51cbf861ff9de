package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/netvalue/pkg/cache"
	"github.com/matzehuels/netvalue/pkg/config"
)

func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local result cache",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "clear",
			Short: "Remove every cached graph and result",
			Args:  cobra.NoArgs,
			RunE:  c.runCacheClear,
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the cache directory",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				dir, err := c.cfg.CacheDir()
				if err != nil {
					return fmt.Errorf("cache dir: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), dir)
				return nil
			},
		},
	)
	return cmd
}

// runCacheClear empties the file cache. Redis entries expire on their own.
func (c *CLI) runCacheClear(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()
	if backend := c.cfg.Cache.Backend; backend != config.BackendFile {
		printInfo(w, "Cache backend is %q; only the file cache can be cleared here", backend)
		return nil
	}

	dir, err := c.cfg.CacheDir()
	if err != nil {
		return fmt.Errorf("cache dir: %w", err)
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return err
	}
	defer fc.Close()

	switch n, err := fc.Clear(); {
	case err != nil:
		return err
	case n == 0:
		printInfo(w, "Cache is empty")
	default:
		printSuccess(w, "Cleared %d cached entries", n)
		printDetail(w, "Directory: %s", dir)
	}
	return nil
}
