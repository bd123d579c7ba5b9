// correlations is a CLI for listing and editing correlations between data
// sources.
//
// Usage:
//
//	correlations list --url https://grafana.example.com --datasources datasources.yaml
//	correlations create --source loki --target tempo --label traces
//	correlations update --source loki --uid 1a2b3c --label spans
//	correlations delete --source loki --uid 1a2b3c
//
// Without --url or a backend url in --config, commands run against an
// in-memory backend.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

type globalOptions struct {
	configURL   string
	url         string
	orgID       string
	policy      string
	output      string
	datasources []string
	verbose     bool
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	opts := &globalOptions{}
	cmd := &cobra.Command{
		Use:   "correlations",
		Short: "Manage correlations between data sources",
		Long: `correlations lists, creates, updates and deletes correlations, the links
between a source and a target data source.

Data sources are resolved from provisioning documents passed with
--datasources or listed in the config file.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configURL, "config", "c", "", "Config file URL (any afs scheme)")
	flags.StringVar(&opts.url, "url", "", "Backend base URL, overrides config")
	flags.StringVar(&opts.orgID, "org-id", "", "Organisation id sent with every request")
	flags.StringVar(&opts.policy, "policy", "", "Unresolved data source policy: strict, drop")
	flags.StringVarP(&opts.output, "output", "o", "table", "Output format: table, json, yaml")
	flags.StringSliceVarP(&opts.datasources, "datasources", "d", nil, "Data source provisioning document URLs")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log to stderr")

	cmd.AddCommand(listCmd(opts))
	cmd.AddCommand(createCmd(opts))
	cmd.AddCommand(updateCmd(opts))
	cmd.AddCommand(deleteCmd(opts))
	return cmd
}
