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
	"io"
	"time"

	"github.com/lifeline-sos/lifeline/clipboard"
	"github.com/lifeline-sos/lifeline/contacts"
	"github.com/lifeline-sos/lifeline/dispatch"
	"github.com/lifeline-sos/lifeline/location"
	"github.com/lifeline-sos/lifeline/profile"
	"github.com/lifeline-sos/lifeline/shared"
	"github.com/lifeline-sos/lifeline/sos"
	"github.com/spf13/cobra"
)

var (
	copyArg   bool
	dryRunArg bool
)

func init() {
	rootCmd.AddCommand(createSosCmd())
}

func createSosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sos",
		Short: "Compose & dispatch an SOS to your trusted contacts",
		Long: `Composes the SOS message (name, check-on-me request, best-effort
location link, timestamp) and hands it to your messaging app - or sends it
through Twilio when configured. Nothing goes out without your confirmation
unless Twilio does the sending.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSos(cmd)
		},
	}

	cmd.Flags().BoolVar(&copyArg, "copy", false, "also copy the composed message to the clipboard")
	cmd.Flags().BoolVar(&dryRunArg, "dry-run", false, "print the dispatch URI instead of opening a messaging app")

	return cmd
}

func runSos(cmd *cobra.Command) error {
	kv, err := openStore()
	if err != nil {
		return err
	}

	contactStore := contacts.NewStore(kv)
	profileStore := profile.NewStore(kv)
	probe := location.NewProbe(configuredSensor(), configuredTimeout())

	coordinator := sos.NewCoordinator(
		contactStore,
		profileStore,
		probe,
		configuredDispatcher(cmd.OutOrStdout()),
		clipboard.System{},
	)

	status := coordinator.Send(cmd.Context())
	if status == sos.STATUS_NO_CONTACTS {
		return formattedError(status)
	}

	report, _ := coordinator.LastReport()
	cmd.Printf("\n%v\n\n%v %v\n", report.Text, green("Status:"), status)

	if copyArg {
		cmd.Printf("%v\n", coordinator.CopyLastMessage())
	}

	return nil
}

// ---------------------------------------------------------------------------------//
// Config Helpers
// --------------------------------------------------------------------------------//

func configuredSensor() location.Sensor {
	if !config.IsSet("location.latitude") || !config.IsSet("location.longitude") {
		return location.UnavailableSensor{}
	}

	return location.StaticSensor{Coordinates: location.Coordinates{
		Latitude:  config.GetFloat64("location.latitude"),
		Longitude: config.GetFloat64("location.longitude"),
	}}
}

func configuredTimeout() time.Duration {
	return time.Duration(config.GetInt("probe.timeoutSeconds")) * time.Second
}

func configuredDispatcher(out io.Writer) sos.Dispatcher {
	if dryRunArg {
		return writerDispatcher{out: out}
	}

	twilioConfig := shared.TwilioConfig{}
	if err := config.UnmarshalKey("twilio", &twilioConfig); err == nil && twilioConfig.Enabled() {
		return dispatch.NewTwilioDispatcher(twilioConfig)
	}

	return dispatch.NewURIHandoff()
}

// writerDispatcher prints the dispatch target instead of launching
// anything; used by --dry-run and in tests.
type writerDispatcher struct {
	out io.Writer
}

func (d writerDispatcher) Dispatch(target string) error {
	_, err := fmt.Fprintln(d.out, target)
	return err
}
