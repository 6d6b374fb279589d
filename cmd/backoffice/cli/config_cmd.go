package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  "Initialize a default configuration file or display the current effective configuration.",
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())

	return cmd
}

// ---------- config init ----------

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a default backoffice.yaml configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing config file")

	return cmd
}

const defaultConfig = `# Backoffice configuration

server:
  host: 0.0.0.0
  port: 8080

# Relational store. Use the managed backend's connection string in
# production; sqlite with a local file works for development.
db:
  driver: sqlite            # sqlite or postgres
  dsn: backoffice.db

# Managed backend (identity provider and document storage).
backend:
  url: ""                   # e.g. https://project.example.co
  api_key: ""               # Set via BACKOFFICE_BACKEND_API_KEY env var
  documents_bucket: documents

# Session tokens
auth:
  jwt_secret: ""            # Set via BACKOFFICE_AUTH_JWT_SECRET env var

# Logging
log:
  level: info               # debug, info, warn, error
`

func runConfigInit(force bool) error {
	path := "backoffice.yaml"

	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	if err := os.WriteFile(path, []byte(defaultConfig), 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Printf("Created %s\n", path)
	fmt.Println("Fill in the backend credentials, then run 'backoffice serve'.")
	return nil
}

// ---------- config show ----------

func newConfigShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the current effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow()
		},
	}

	return cmd
}

func runConfigShow() error {
	initConfig()

	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		fmt.Printf("Config file: %s\n", configFile)
	} else {
		fmt.Println("Config file: (none found, using defaults)")
	}
	fmt.Println()

	settings := viper.AllSettings()
	if len(settings) == 0 {
		fmt.Println("No configuration settings loaded.")
		fmt.Println("Run 'backoffice config init' to create a default configuration file.")
		return nil
	}

	redactSecrets(settings)
	out, err := yaml.Marshal(settings)
	if err != nil {
		return err
	}
	fmt.Print(string(out))
	return nil
}

// redactSecrets masks credential values before printing.
func redactSecrets(settings map[string]interface{}) {
	for key, value := range settings {
		switch v := value.(type) {
		case map[string]interface{}:
			redactSecrets(v)
		case string:
			if v != "" && (key == "api_key" || key == "jwt_secret" || key == "dsn") {
				settings[key] = "****"
			}
		}
	}
}
