package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/viant/correlations/model"
)

func listCmd(opts *globalOptions) *cobra.Command {
	var sortBy string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List correlations",
		Long: `List every correlation with its resolved source and target data source.

Examples:
  # List sorted by source data source name
  correlations list --sort source

  # Output as JSON
  correlations list -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := model.ParseSortKey(sortBy)
			if err != nil {
				return err
			}
			ctx := context.Background()
			srv, err := newService(ctx, opts)
			if err != nil {
				return err
			}
			defer srv.Close()
			if err = srv.Activate(ctx); err != nil {
				return err
			}
			views := srv.State().Correlations
			model.SortViews(views, key)
			result := ListResult{Correlations: make([]Row, 0, len(views)), Total: len(views)}
			for _, view := range views {
				result.Correlations = append(result.Correlations, rowOf(view))
			}
			return outputResult(cmd.OutOrStdout(), result, opts.output)
		},
	}
	cmd.Flags().StringVar(&sortBy, "sort", "", "Sort by: source, target, label")
	return cmd
}
