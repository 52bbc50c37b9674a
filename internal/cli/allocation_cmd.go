package cli

import (
	"fmt"

	"github.com/alexanderramin/horizon/internal/cli/formatter"
	"github.com/alexanderramin/horizon/internal/contract"
	"github.com/spf13/cobra"
)

func newAllocationCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "allocation",
		Aliases: []string{"alloc"},
		Short:   "Assign resources to projects",
	}
	cmd.AddCommand(
		newAllocationAddCmd(a),
		newAllocationUpdateCmd(a),
		newAllocationRemoveCmd(a),
		newAllocationOverlapCmd(a),
	)
	return cmd
}

func newAllocationAddCmd(a *App) *cobra.Command {
	var req contract.CreateAllocationRequest

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Allocate a resource to a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.actor(cmd)
			if err != nil {
				return err
			}
			req.MilestoneID = idFlag(cmd, "milestone")
			req.CapabilityID = idFlag(cmd, "capability")
			req.RequirementID = idFlag(cmd, "requirement")
			if req.StartDate, err = dateFlag(cmd, "start"); err != nil {
				return err
			}
			if req.EndDate, err = dateFlag(cmd, "end"); err != nil {
				return err
			}
			resp, err := a.Allocations.Create(cmd.Context(), u, req.Allocation())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatAllocation(resp))
			return nil
		},
	}
	cmd.Flags().Int64Var(&req.ResourceID, "resource", 0, "Resource id")
	cmd.Flags().Int64Var(&req.ProjectID, "project", 0, "Project id")
	cmd.Flags().IntVar(&req.Percentage, "pct", 0, "Allocation percentage (1-100)")
	cmd.Flags().Int64("milestone", 0, "Milestone id")
	cmd.Flags().Int64("capability", 0, "Capability id used for the match score")
	cmd.Flags().Int64("requirement", 0, "Requirement id used for the match score")
	cmd.Flags().String("start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().String("end", "", "End date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("resource")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("pct")
	return cmd
}

func newAllocationUpdateCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Edit an allocation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.actor(cmd)
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			patch := contract.AllocationPatch{
				MilestoneID:   idFlag(cmd, "milestone"),
				Percentage:    changedInt(cmd, "pct"),
				CapabilityID:  idFlag(cmd, "capability"),
				RequirementID: idFlag(cmd, "requirement"),
			}
			if patch.StartDate, err = dateFlag(cmd, "start"); err != nil {
				return err
			}
			if patch.EndDate, err = dateFlag(cmd, "end"); err != nil {
				return err
			}
			resp, err := a.Allocations.Update(cmd.Context(), u, id, patch)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatAllocation(resp))
			return nil
		},
	}
	cmd.Flags().Int("pct", 0, "Allocation percentage (1-100)")
	cmd.Flags().Int64("milestone", 0, "Milestone id (0 unlinks)")
	cmd.Flags().Int64("capability", 0, "Capability id (0 unlinks)")
	cmd.Flags().Int64("requirement", 0, "Requirement id (0 unlinks)")
	cmd.Flags().String("start", "", "Start date (empty clears)")
	cmd.Flags().String("end", "", "End date (empty clears)")
	return cmd
}

func newAllocationRemoveCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove an allocation and show the resource's new load",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.actor(cmd)
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			overlap, err := a.Allocations.Delete(cmd.Context(), u, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed allocation %d\n%s\n", id, formatter.FormatOverlap(overlap))
			return nil
		},
	}
}

func newAllocationOverlapCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "overlap RESOURCE_ID",
		Short: "Show a resource's peak concurrent allocation",
		Long: "Show a resource's peak concurrent allocation. Without --scenario the\n" +
			"resource's own scenario is used; --scenario 0 selects the baseline.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			overlap, err := a.Allocations.Overlap(cmd.Context(), id, idFlag(cmd, "scenario"))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatOverlap(overlap))
			return nil
		},
	}
	cmd.Flags().Int64("scenario", 0, "Scenario id (0 for baseline)")
	return cmd
}
