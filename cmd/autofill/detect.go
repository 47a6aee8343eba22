package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/jonathan/autofill-core/internal/platform"
	"github.com/spf13/cobra"
)

var detectCmd = &cobra.Command{
	Use:   "detect URL...",
	Short: "Detect the applicant tracking system behind one or more URLs",
	Long:  "Detect prints the platform id each URL resolves to, the adapter that would handle it, and whether that adapter is platform-specific. Nothing is fetched.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDetect,
}

var listAdapters bool

func init() {
	detectCmd.Flags().BoolVar(&listAdapters, "list", false, "Also list registered adapters")
	rootCmd.AddCommand(detectCmd)
}

func runDetect(cmd *cobra.Command, args []string) error {
	registry := platform.NewDefaultRegistry(nil, logger)
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "URL\tPLATFORM\tADAPTER\tDEDICATED")

	for _, u := range args {
		registry.SetLocation(platform.StaticLocation(u))
		adapter, err := registry.GetAdapter()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\n", u, registry.DetectPlatform(), adapter.PlatformName(), registry.HasDedicatedAdapter())
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if listAdapters {
		fmt.Fprintln(cmd.OutOrStdout())
		fmt.Fprintln(cmd.OutOrStdout(), "Registered adapters:")
		for _, id := range registry.ListAdapters() {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", id)
		}
	}
	return nil
}
