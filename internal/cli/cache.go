package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/cache"
	"github.com/matzehuels/wordcloud/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the layout and artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached layouts and artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			return c.clearCache(cmd.Context(), cfg)
		},
	}
}

func (c *CLI) clearCache(ctx context.Context, cfg *config.Config) error {
	switch cfg.Cache.Backend {
	case config.BackendNone:
		printInfo("Caching is disabled")
		return nil
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cfg.Cache.RedisURL, redisPrefix)
		if err != nil {
			return fmt.Errorf("connect cache: %w", err)
		}
		defer rc.Close()
		count, err := rc.Clear(ctx)
		if err != nil {
			return err
		}
		printSuccess("Cleared %d cached entries", count)
		printDetail("Redis prefix: %s", redisPrefix)
		return nil
	}

	dir, err := fileCacheDir(cfg)
	if err != nil {
		return fmt.Errorf("get cache dir: %w", err)
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return err
	}
	count, err := fc.Clear()
	if err != nil {
		return err
	}
	if count == 0 {
		printInfo("Cache is empty")
		return nil
	}
	printSuccess("Cleared %d cached entries", count)
	printDetail("Directory: %s", dir)
	return nil
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			if cfg.Cache.Backend == config.BackendRedis {
				fmt.Println(redisPrefix + "*")
				return nil
			}
			dir, err := fileCacheDir(cfg)
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Println(dir)
			return nil
		},
	}
}
