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
	"github.com/lifeline-sos/lifeline/contacts"
	"github.com/spf13/cobra"
)

var (
	nameArg  string
	phoneArg string
)

func init() {
	rootCmd.AddCommand(createContactsCmd())
}

func createContactsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contacts",
		Short: "Manage the trusted contacts an SOS goes out to",
	}

	cmd.AddCommand(createContactsAddCmd(), createContactsListCmd(), createContactsRemoveCmd())

	return cmd
}

func createContactsAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a trusted contact",
		Long: `Adds a contact to the SOS recipient list. Official emergency numbers
(911, 112, 999, 988) are refused - call them directly instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := contactStore()
			if err != nil {
				return err
			}

			contact, err := store.Add(nameArg, phoneArg)
			if err != nil {
				return err
			}

			cmd.Printf("%v %v (%v) is on your SOS list\n", green("Added:"), contact.DisplayName(), contact.Phone)
			return nil
		},
	}

	cmd.Flags().StringVarP(&nameArg, "name", "n", "", "name of the contact")
	cmd.Flags().StringVarP(&phoneArg, "phone", "p", "", "phone number of the contact")
	cmd.MarkFlagRequired("phone")

	return cmd
}

func createContactsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your trusted contacts in SOS order",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := contactStore()
			if err != nil {
				return err
			}

			list := store.List()
			if len(list) == 0 {
				cmd.Printf("%s no trusted contacts yet - an SOS has nowhere to go\n", warningLabel)
				return nil
			}

			for _, contact := range list {
				cmd.Printf("%v  %v  %v\n", contact.ID, contact.DisplayName(), contact.Phone)
			}
			return nil
		},
	}
}

func createContactsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <contact-id>",
		Short: "Remove a trusted contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := contactStore()
			if err != nil {
				return err
			}

			if err := store.Remove(args[0]); err != nil {
				return err
			}

			cmd.Printf("%v contact removed\n", green("Done:"))
			return nil
		},
	}
}

func contactStore() (*contacts.Store, error) {
	kv, err := openStore()
	if err != nil {
		return nil, err
	}

	return contacts.NewStore(kv), nil
}
