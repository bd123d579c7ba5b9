package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/viant/correlations/model"
)

func createCmd(opts *globalOptions) *cobra.Command {
	input := &model.NewCorrelation{}
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a correlation",
		Long: `Create a correlation from a source to a target data source.

Examples:
  correlations create --source loki --target tempo --label traces`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			srv, err := newService(ctx, opts)
			if err != nil {
				return err
			}
			defer srv.Close()
			view, err := srv.Create(ctx, input)
			if err != nil {
				return err
			}
			return outputResult(cmd.OutOrStdout(), rowOf(view), opts.output)
		},
	}
	cmd.Flags().StringVar(&input.SourceUID, "source", "", "Source data source uid")
	cmd.Flags().StringVar(&input.TargetUID, "target", "", "Target data source uid")
	cmd.Flags().StringVar(&input.Label, "label", "", "Label")
	cmd.Flags().StringVar(&input.Description, "description", "", "Description")
	_ = cmd.MarkFlagRequired("source")
	_ = cmd.MarkFlagRequired("target")
	return cmd
}

func updateCmd(opts *globalOptions) *cobra.Command {
	input := &model.UpdateCorrelation{}
	var label, description string
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update the label or description of a correlation",
		Long: `Update the label or description of a correlation. The target cannot change.

Examples:
  correlations update --source loki --uid 1a2b3c --label spans`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			srv, err := newService(ctx, opts)
			if err != nil {
				return err
			}
			defer srv.Close()
			if cmd.Flags().Changed("label") {
				input.WithLabel(label)
			}
			if cmd.Flags().Changed("description") {
				input.WithDescription(description)
			}
			view, err := srv.Update(ctx, input)
			if err != nil {
				return err
			}
			return outputResult(cmd.OutOrStdout(), rowOf(view), opts.output)
		},
	}
	cmd.Flags().StringVar(&input.SourceUID, "source", "", "Source data source uid")
	cmd.Flags().StringVar(&input.UID, "uid", "", "Correlation uid")
	cmd.Flags().StringVar(&label, "label", "", "Label, empty to clear")
	cmd.Flags().StringVar(&description, "description", "", "Description, empty to clear")
	_ = cmd.MarkFlagRequired("source")
	_ = cmd.MarkFlagRequired("uid")
	return cmd
}

func deleteCmd(opts *globalOptions) *cobra.Command {
	ref := model.Ref{}
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a correlation",
		Long: `Delete a correlation.

Examples:
  correlations delete --source loki --uid 1a2b3c`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			srv, err := newService(ctx, opts)
			if err != nil {
				return err
			}
			defer srv.Close()
			if err = srv.Remove(ctx, ref); err != nil {
				return err
			}
			return outputResult(cmd.OutOrStdout(), DeleteResult{SourceUID: ref.SourceUID, UID: ref.UID, Remaining: len(srv.State().Correlations)}, opts.output)
		},
	}
	cmd.Flags().StringVar(&ref.SourceUID, "source", "", "Source data source uid")
	cmd.Flags().StringVar(&ref.UID, "uid", "", "Correlation uid")
	_ = cmd.MarkFlagRequired("source")
	_ = cmd.MarkFlagRequired("uid")
	return cmd
}
