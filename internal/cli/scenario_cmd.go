package cli

import (
	"fmt"

	"github.com/alexanderramin/horizon/internal/cli/formatter"
	"github.com/alexanderramin/horizon/internal/contract"
	"github.com/spf13/cobra"
)

func newScenarioCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "scenario",
		Aliases: []string{"sc"},
		Short:   "Manage planning scenarios",
	}
	cmd.AddCommand(
		newScenarioCreateCmd(a),
		newScenarioListCmd(a),
		newScenarioShowCmd(a),
		newScenarioUpdateCmd(a),
		newScenarioCloneCmd(a),
		newScenarioPublishCmd(a),
		newScenarioDeleteCmd(a),
		newScenarioStatsCmd(a),
	)
	return cmd
}

func newScenarioCreateCmd(a *App) *cobra.Command {
	var req contract.CreateScenarioRequest
	var segment int64
	var meta map[string]string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a planned scenario",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.actor(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("segment") {
				req.SegmentFunctionID = &segment
			}
			req.Metadata = metadataFlag(meta)
			sc, err := a.Scenarios.Create(cmd.Context(), u, req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created scenario %s [%d]\n", sc.Name, sc.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "Scenario name")
	cmd.Flags().StringVar(&req.Description, "description", "", "Description")
	cmd.Flags().Int64Var(&segment, "segment", 0, "Segment function id")
	cmd.Flags().StringToStringVar(&meta, "meta", nil, "Metadata key=value pairs")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newScenarioListCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List scenarios visible to you",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.actor(cmd)
			if err != nil {
				return err
			}
			list, err := a.Scenarios.List(cmd.Context(), u)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatScenarioList(list))
			return nil
		},
	}
}

func newScenarioShowCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one scenario",
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
			sc, err := a.Scenarios.Get(cmd.Context(), u, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatScenario(sc))
			return nil
		},
	}
}

func newScenarioUpdateCmd(a *App) *cobra.Command {
	var meta map[string]string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Edit a planned scenario",
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
			req := contract.UpdateScenarioRequest{
				Name:              changedString(cmd, "name"),
				Description:       changedString(cmd, "description"),
				SegmentFunctionID: idFlag(cmd, "segment"),
			}
			if cmd.Flags().Changed("meta") {
				req.Metadata = metadataFlag(meta)
				if req.Metadata == nil {
					req.Metadata = map[string]any{}
				}
			}
			sc, err := a.Scenarios.Update(cmd.Context(), u, id, req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated scenario %s [%d]\n", sc.Name, sc.ID)
			return nil
		},
	}
	cmd.Flags().String("name", "", "New name")
	cmd.Flags().String("description", "", "New description")
	cmd.Flags().Int64("segment", 0, "Segment function id (0 unlinks)")
	cmd.Flags().StringToStringVar(&meta, "meta", nil, "Replace metadata with key=value pairs")
	return cmd
}

func newScenarioCloneCmd(a *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "clone ID",
		Short: "Deep-copy a scenario into a new planned scenario",
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
			req := contract.NewCloneRequest(id)
			req.Name = name
			resp, err := a.Scenarios.Clone(cmd.Context(), u, req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatClone(resp))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", `Name of the copy (default "<source> (copy)")`)
	return cmd
}

func newScenarioPublishCmd(a *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "publish ID",
		Short: "Publish a scenario, freezing it",
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
			if err := a.confirm(fmt.Sprintf("Publish scenario %d? It cannot be edited afterwards.", id), yes); err != nil {
				return err
			}
			sc, err := a.Scenarios.Publish(cmd.Context(), u, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Published scenario %s [%d]\n", sc.Name, sc.ID)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}

func newScenarioDeleteCmd(a *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Soft-delete a planned scenario",
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
			if err := a.confirm(fmt.Sprintf("Delete scenario %d?", id), yes); err != nil {
				return err
			}
			if err := a.Scenarios.Delete(cmd.Context(), u, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted scenario %d\n", id)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}

func newScenarioStatsCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats ID",
		Short: "Count a scenario's active rows",
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
			stats, err := a.Scenarios.Stats(cmd.Context(), u, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatStats(stats))
			return nil
		},
	}
}
