package cli

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// Execute creates the root command tree and runs it.
func Execute(version, commit, date string) error {
	rootCmd := newRootCmd(version, commit, date)
	return rootCmd.Execute()
}

func newRootCmd(version, commit, date string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backoffice",
		Short: "Internal administration console for the Chadito marketplace",
		Long: `Backoffice serves the Chadito IS administration console: role-gated
dashboards, merchant verification review, listing-report moderation, and the
user directory, all on top of the managed marketplace backend.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./backoffice.yaml)")

	cobra.OnInitialize(initConfig)

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newVersionCmd(version, commit, date))
	cmd.AddCommand(newDBCmd())
	cmd.AddCommand(newRolesCmd())
	cmd.AddCommand(newLoginCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

func initConfig() {
	// Local development keeps backend credentials in .env; absence is fine.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("backoffice")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.backoffice")
	}

	viper.SetEnvPrefix("BACKOFFICE")
	viper.AutomaticEnv()
	viper.ReadInConfig() // Ignore error - config file is optional
}
