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
	"strings"

	"github.com/lifeline-sos/lifeline/profile"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(createNameCmd())
}

func createNameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "name [display-name]",
		Short: "Show or set the name used in your SOS message",
		RunE: func(cmd *cobra.Command, args []string) error {
			kv, err := openStore()
			if err != nil {
				return err
			}
			store := profile.NewStore(kv)

			if len(args) == 0 {
				if store.Name() == "" {
					cmd.Printf("%s no name set - your SOS will open with \"This is an SOS message.\"\n", warningLabel)
					return nil
				}

				cmd.Printf("%v\n", store.Name())
				return nil
			}

			newName := strings.Join(args, " ")
			if err := store.SetName(newName); err != nil {
				return err
			}

			cmd.Printf("%v your SOS will introduce you as %v\n", green("Saved:"), newName)
			return nil
		},
	}
}
