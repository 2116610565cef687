package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/config"
)

// initCommand writes a default wordcloud.toml.
func (c *CLI) initCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a default " + config.FileName,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			path, err := config.InitFile(dir)
			if err != nil {
				return fmt.Errorf("init config: %w", err)
			}
			printSuccess("Wrote default config")
			printFile(path)
			return nil
		},
	}
}
