package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

type rootOpts struct{}

func root() *rootOpts {
	return &rootOpts{}
}

func (o *rootOpts) cmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "einvoice",
		Short:         "Generate electronic invoice documents (UBL, Factur-X, FatturaPA) from invoice JSON",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(convert(o).cmd())
	cmd.AddCommand(profiles(o).cmd())

	return cmd
}

// openInput returns the first argument as a file, or stdin when no
// argument is given.
func openInput(cmd *cobra.Command, args []string) (io.ReadCloser, error) {
	if len(args) >= 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, fmt.Errorf("opening input: %w", err)
		}
		return f, nil
	}
	return io.NopCloser(cmd.InOrStdin()), nil
}

// openOutput returns the second argument as a file, or stdout when no
// output path is given.
func (o *rootOpts) openOutput(cmd *cobra.Command, args []string) (io.WriteCloser, error) {
	if len(args) >= 2 {
		f, err := os.Create(args[1])
		if err != nil {
			return nil, fmt.Errorf("creating output: %w", err)
		}
		return f, nil
	}
	return nopWriteCloser{cmd.OutOrStdout()}, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
