package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/criyle/go-judger/pkg/seccomp"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the seccomp rules",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "RULE\tINSTRUCTIONS")
		for _, name := range seccomp.Names() {
			insts, err := seccomp.Compile(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s\t%d\n", name, len(insts))
		}
		return w.Flush()
	},
}
