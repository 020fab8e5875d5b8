package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "servicecatalog",
		Short: "Public service catalog reconciliation",
		Long: `Servicecatalog reconciles upstream snapshots of public service
descriptions into the canonical catalog kept in a SPARQL graph store.

It processes:
  - concept snapshots into concepts, with authority codes and display configurations
  - instance snapshots into the instances of each bestuurseenheid

Every snapshot ends up in the processed or the failed ledger.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")

	rootCmd.AddCommand(processCmd())
	rootCmd.AddCommand(fetchCmd())
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "servicecatalog %s\n", version)
		},
	}
}
