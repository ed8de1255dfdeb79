/*
Copyright © 2022 Mayday Contributors

*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mayday-app/mayday/dev/config"
	"github.com/mayday-app/mayday/server"
	"github.com/mayday-app/mayday/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start a mayday server",
	Long:  `The mayday server houses the SOS alerting workflow i.e. contact sync, SOS event log & SMS fan-out`,
	Run: func(cmd *cobra.Command, args []string) {
		server.Start(serverConfig(), isDevEnv, isTestEnv)
	},
}

var serverConfigFile string

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringVar(&serverConfigFile, "sconfig", "", "Config for server")
}

func serverConfig() *viper.Viper {
	config := viper.New()

	if isDevEnv {
		serverConfigFile = devConfigFilePath()
	}

	if serverConfigFile == "" {
		cobra.CheckErr(formattedError("a server config file is required, pass one with --sconfig or run with --dev"))
	}

	config.SetConfigFile(serverConfigFile)
	config.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := config.ReadInConfig(); err != nil {
		cobra.CheckErr(formattedError("error reading server config file: %v", err))
	}

	return config
}

// devConfigFilePath returns the path of the dev server config,
// writing the default dev config to disk first when none exists
func devConfigFilePath() string {
	configDir, err := os.Getwd()
	cobra.CheckErr(err)

	configFilePath := filepath.Join(configDir, "dev", "config", "server.yml")

	exists, err := utils.FileExist(configFilePath)
	cobra.CheckErr(err)

	if !exists {
		fmt.Fprintf(os.Stderr, "%v no dev config found, writing default to %v\n", warningLabel, configFilePath)

		cobra.CheckErr(utils.CreateDirIfNotExist(filepath.Dir(configFilePath)))
		cobra.CheckErr(os.WriteFile(configFilePath, []byte(config.SERVER_YML), 0600))
	}

	return configFilePath
}
