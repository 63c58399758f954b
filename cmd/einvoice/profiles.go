package main

import (
	"fmt"

	einvoice "github.com/facturo/einvoice"
	"github.com/spf13/cobra"
)

type profilesOpts struct {
	*rootOpts
}

func profiles(o *rootOpts) *profilesOpts {
	return &profilesOpts{rootOpts: o}
}

func (p *profilesOpts) cmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List the registered export profiles",
		Args:  cobra.NoArgs,
		RunE:  p.runE,
	}
}

func (p *profilesOpts) runE(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	for _, prof := range einvoice.Profiles() {
		fmt.Fprintf(out, "%-12s %s\n", prof.ID, prof.Name)
	}
	// FatturaPA sits outside the registry but is still selectable.
	fmt.Fprintf(out, "%-12s %s\n", "fatturapa", "FatturaPA v1.2 (Italian SDI)")
	return nil
}
