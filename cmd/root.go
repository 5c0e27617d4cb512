/*
Copyright © 2026 lifeline authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/lifeline-sos/lifeline/kvstore"
	"github.com/lifeline-sos/lifeline/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	config  *viper.Viper

	isDevEnv  bool
	isTestEnv bool

	yellow       = color.New(color.FgYellow).SprintFunc()
	red          = color.New(color.FgRed).SprintFunc()
	green        = color.New(color.FgGreen).SprintFunc()
	warningLabel = yellow("Warning:")

	// openStore is stubbed out in tests to avoid touching the real db.
	openStore = defaultOpenStore
)

// rootCmd represents the base command when called without any subcommands.
// Initialized as a var (not in init) so it exists before the init funcs in
// other files of this package, which run first in filename order.
var rootCmd = createRootCmd()

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.Version = fmt.Sprintf("v%s", version.Version)
}

func createRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use: "lifeline",
		Short: `lifeline keeps a short list of trusted contacts and sends them
a one-action SOS message with your name, the time, and a best-effort
location link.

It refuses to address official emergency numbers: those need a real call,
not a text blast.`,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.lifeline.yaml)")
	cmd.PersistentFlags().BoolVarP(&isDevEnv, "dev", "", false, "run in development mode")
	cmd.PersistentFlags().BoolVarP(&isTestEnv, "test", "", false, "run in test mode")

	return cmd
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	config = viper.New()

	if cfgFile != "" {
		// Use config file from the flag.
		config.SetConfigFile(cfgFile)
	} else {
		configName, configDir, err := defaultCfgNameAndDir()
		cobra.CheckErr(err)

		// If config file is not found, create one using defaultConfigValue
		configFilePath := filepath.Join(configDir, configName)
		if _, err := os.Stat(configFilePath); os.IsNotExist(err) {
			err = ioutil.WriteFile(configFilePath, []byte(defaultConfigValue()), 0600)
			cobra.CheckErr(err)
		}

		// Search config in home directory with name ".lifeline" (without extension).
		config.AddConfigPath(configDir)
		config.SetConfigType("yaml")
		config.SetConfigName(configName)
	}

	config.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := config.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", config.ConfigFileUsed())
	}
}

func defaultCfgNameAndDir() (configName string, configDir string, err error) {
	configName = ".lifeline.yaml"

	// Use home directory for production
	configDir, err = os.UserHomeDir()
	if err != nil {
		return "", "", err
	}

	if isDevEnv || isTestEnv {
		configName = ".lifeline.dev.yaml"
		configDir, err = os.Getwd()
		if err != nil {
			return "", "", err
		}

		if isTestEnv {
			configName = ".lifeline.yaml"
			configDir = filepath.Join(configDir, "test-fixtures")
		}
	}

	return configName, configDir, err
}

// defaultConfigValue returns the default content for .lifeline.yaml
func defaultConfigValue() string {
	return `# How long an SOS send waits for a location fix, in seconds.
probe:
 timeoutSeconds: 10

# Desktop machines have no positioning hardware. Pin coordinates here and
# the SOS location link will use them.
# e.g.
# location:
#   latitude: 43.653225
#   longitude: -79.383186
#
location:

# With Twilio configured, 'lifeline sos' delivers the message itself
# instead of opening your messaging app.
# twilio:
#   accountSid:
#   authToken:
#   messagingServiceSid:
#
twilio:
`
}

func defaultOpenStore() (kvstore.Store, error) {
	rootDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	if isDevEnv || isTestEnv {
		rootDir, err = os.Getwd()
		if err != nil {
			return nil, err
		}
	}

	return kvstore.NewGormStore(filepath.Join(rootDir, storeFolderName()))
}

func storeFolderName() string {
	if isDevEnv || isTestEnv {
		return "dev"
	}

	return "lifeline"
}

func formattedError(format string, a ...interface{}) error {
	return fmt.Errorf(red(format), a...)
}
