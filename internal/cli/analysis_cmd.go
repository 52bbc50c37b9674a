package cli

import (
	"fmt"

	"github.com/alexanderramin/horizon/internal/cli/formatter"
	"github.com/alexanderramin/horizon/internal/contract"
	"github.com/spf13/cobra"
)

func newMatchCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Score capabilities against requirements",
	}

	var capID, reqID int64
	score := &cobra.Command{
		Use:   "score",
		Short: "Score one capability against one requirement",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.Match.Score(cmd.Context(), capID, reqID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatMatch(b))
			return nil
		},
	}
	score.Flags().Int64Var(&capID, "capability", 0, "Capability id")
	score.Flags().Int64Var(&reqID, "requirement", 0, "Requirement id")
	_ = score.MarkFlagRequired("capability")
	_ = score.MarkFlagRequired("requirement")

	defaults := contract.NewSuggestRequest(0)
	var minScore, limit int
	suggest := &cobra.Command{
		Use:   "suggest PROJECT_ID",
		Short: "Rank resources for a project's requirements",
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
			req := contract.NewSuggestRequest(id)
			req.MinScore, req.Limit = minScore, limit
			list, err := a.Match.Suggest(cmd.Context(), u, req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSuggestions(list))
			return nil
		},
	}
	suggest.Flags().IntVar(&minScore, "min-score", defaults.MinScore, "Drop pairs scoring below this")
	suggest.Flags().IntVar(&limit, "limit", defaults.Limit, "Maximum suggestions (0 for all)")

	cmd.AddCommand(score, suggest)
	return cmd
}

func newRiskCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "risk",
		Short: "Score delivery risk",
	}

	var scenario int64
	segment := &cobra.Command{
		Use:   "segment SEGMENT_FUNCTION_ID",
		Short: "Aggregate risk across a segment function's projects",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			risk, err := a.Risk.SegmentFunction(cmd.Context(), id, scenario)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSegmentRisk(risk))
			return nil
		},
	}
	segment.Flags().Int64Var(&scenario, "scenario", 0, "Scenario id (0 for baseline)")

	project := &cobra.Command{
		Use:   "project PROJECT_ID",
		Short: "Risk breakdown for one project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			score, err := a.Risk.Project(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectRisk(score))
			return nil
		},
	}

	cmd.AddCommand(segment, project)
	return cmd
}
