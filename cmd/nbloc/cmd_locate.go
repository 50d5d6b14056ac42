package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newCurrentCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Print the path of the current notebook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := a.locator.CurrentPath(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func newAdjacentCmd(a *app, use, short string, delta int) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := a.locator.Adjacent(cmd.Context(), delta)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func newNumberCmd(a *app) *cobra.Command {
	var prefix bool

	cmd := &cobra.Command{
		Use:   "number <n>",
		Short: "Print the notebook with the given numeric prefix",
		Long: `Print the notebook whose leading number equals <n>. With --prefix, <n> is
matched literally against the start of the file name instead.

Arguments that begin with "-" are read as flags; put them after "--".`,
		Example: `  nbloc number 5
  nbloc number --prefix 05
  nbloc number -- -1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				path string
				err  error
			)
			if prefix {
				path, err = a.locator.ByPrefix(args[0])
			} else {
				n, convErr := strconv.Atoi(args[0])
				if convErr != nil {
					return fmt.Errorf("invalid notebook number %q", args[0])
				}
				path, err = a.locator.ByNumber(n)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&prefix, "prefix", false, "Match the argument as a literal file name prefix")
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List the numbered notebooks in the notebook directory",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			notebooks, err := a.locator.List()
			if err != nil {
				return err
			}

			if jsonOut {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(notebooks)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, nb := range notebooks {
				fmt.Fprintf(w, "%d\t%s\n", nb.Number, nb.Path)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVarP(&jsonOut, "json", "j", false, "Output as JSON")
	return cmd
}
