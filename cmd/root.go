package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/stack-radar/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "stack-radar",
	Short: "Estimate a prospect's ERP and fiscal-compliance stack",
	Long: "Ranks the ERP and fiscal-compliance vendors a Brazilian company most likely runs, " +
		"explains the ranking, and maps its segment to a typical sales pain.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
