// Package cmd defines the billfold CLI commands.
package cmd

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/billfold/billfold/pkg/logging"
)

var rootCmd = &cobra.Command{
	Use:           "billfold",
	Short:         "Reconcile extracted bill records",
	Long:          "billfold merges bill records extracted from email bodies and PDF attachments,\ncombining records that describe the same real-world bill.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// .env first so viper's env binding can see it.
		_ = godotenv.Load()
		viper.SetEnvPrefix("billfold")
		viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
		viper.AutomaticEnv()

		if level := viper.GetString("log-level"); level != "" {
			logging.SetLevel(level)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "log level (trace, debug, info, warn, error)")
	_ = viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// Execute runs the CLI. Errors are logged here so main stays bare.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		logging.Err(err).Msg("command failed")
		return err
	}
	return nil
}
