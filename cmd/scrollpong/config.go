package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/scroll-pong/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration after the search path, --difficulty, --fps and
--gamma are applied, as YAML. Save it to ~/.scrollpong/configs/pong.yaml or
./configs/pong.yaml to customize the game.

Examples:
  scrollpong config > ~/.scrollpong/configs/pong.yaml
  scrollpong config --difficulty easy`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
