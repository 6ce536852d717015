// acmedash es el binario del dashboard: servidor HTTP, migraciones y seed.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dropDatabas3/acmedash/internal/config"
)

func main() {
	var (
		configPath string
		envFile    string
	)

	root := &cobra.Command{
		Use:           "acmedash",
		Short:         "API del dashboard financiero Acme",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// .env es opcional; las vars ya seteadas tienen prioridad
			_ = godotenv.Load(envFile)
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "configs/config.yaml", "path al config YAML")
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "path al archivo .env")

	loadConfig := func() (*config.Config, error) {
		return config.Load(configPath)
	}

	root.AddCommand(
		newServeCmd(loadConfig),
		newMigrateCmd(loadConfig),
		newSeedCmd(loadConfig),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
