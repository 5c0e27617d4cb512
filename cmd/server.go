/*
Copyright © 2026 lifeline authors

*/
package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/lifeline-sos/lifeline/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start a lifeline API server",
	Long: `The lifeline server exposes contacts, profile, reported location and
SOS dispatch over an authenticated HTTP API, for a browser or mobile shell
to drive.`,
	Run: func(cmd *cobra.Command, args []string) {
		server.Start(serverConfig(), isDevEnv)
	},
}

var serverCfgFile string

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.PersistentFlags().StringVar(&serverCfgFile, "sconfig", "", "Config for server")
}

func serverConfig() *viper.Viper {
	config = viper.New()

	if isDevEnv {
		serverCfgFile = devConfigFilePath()
	}

	config.SetConfigFile(serverCfgFile)
	config.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := config.ReadInConfig(); err != nil {
		log.Panic(fmt.Sprintf("error reading server config file: %v", err))
	}

	return config
}

func devConfigFilePath() string {
	configDir, err := os.Getwd()
	if err != nil {
		log.Panic(err)
	}

	return filepath.Join(configDir, "dev", "config", "server.yml")
}
