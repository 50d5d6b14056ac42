package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/d-kuro/nbloc/internal/locator"
)

func newServersCmd(a *app) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "servers",
		Short: "Probe every advertised notebook server",
		Long: `Query the session API of every notebook server found in the Jupyter runtime
directories and report how many sessions each one has, or why it was skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			probes, err := a.locator.Probe(cmd.Context())
			if err != nil {
				return err
			}

			statuses := make([]locator.ServerStatus, 0, len(probes))
			for _, p := range probes {
				statuses = append(statuses, p.Status())
			}

			if jsonOut {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(statuses)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "URL\tAUTH\tSESSIONS\tSTATUS")
			for _, s := range statuses {
				auth := "none"
				if s.Credentials {
					auth = "token"
				}
				status := "ok"
				if s.Skipped != "" {
					status = "skipped: " + s.Skipped
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", s.URL, auth, s.Sessions, status)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVarP(&jsonOut, "json", "j", false, "Output as JSON")
	return cmd
}
