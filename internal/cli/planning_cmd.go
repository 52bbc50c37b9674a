package cli

import (
	"fmt"

	"github.com/alexanderramin/horizon/internal/cli/formatter"
	"github.com/alexanderramin/horizon/internal/contract"
	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/spf13/cobra"
)

func newSegmentCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "segment",
		Short: "Manage segment functions",
	}

	var name string
	add := &cobra.Command{
		Use:   "add",
		Short: "Create a segment function",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.actor(cmd)
			if err != nil {
				return err
			}
			sf, err := a.Planning.CreateSegmentFunction(cmd.Context(), u, name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created segment function %s [%d]\n", sf.Name, sf.ID)
			return nil
		},
	}
	add.Flags().StringVar(&name, "name", "", "Segment function name")
	_ = add.MarkFlagRequired("name")

	list := &cobra.Command{
		Use:   "list",
		Short: "List segment functions",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.Planning.ListSegmentFunctions(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(list))
			for _, sf := range list {
				rows = append(rows, []string{fmt.Sprint(sf.ID), sf.Name})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable([]string{"ID", "NAME"}, rows))
			return nil
		},
	}

	cmd.AddCommand(add, list)
	return cmd
}

func newProjectCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}
	cmd.AddCommand(newProjectAddCmd(a), newProjectListCmd(a), newProjectUpdateCmd(a), newProjectRemoveCmd(a))
	return cmd
}

func newProjectAddCmd(a *App) *cobra.Command {
	var req contract.CreateProjectRequest
	var health string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a project (scenario 0 is the baseline)",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.actor(cmd)
			if err != nil {
				return err
			}
			req.SegmentFunctionID = idFlag(cmd, "segment")
			req.HealthStatus = domain.HealthStatus(health)
			if req.StartDate, err = dateFlag(cmd, "start"); err != nil {
				return err
			}
			if req.EndDate, err = dateFlag(cmd, "end"); err != nil {
				return err
			}
			if req.DesiredCompletionDate, err = dateFlag(cmd, "desired"); err != nil {
				return err
			}
			p := req.Project()
			if err := a.Planning.CreateProject(cmd.Context(), u, p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s [%s] id %d\n", p.Name, p.ProjectNumber, p.ID)
			return nil
		},
	}
	cmd.Flags().Int64Var(&req.ScenarioID, "scenario", 0, "Scenario id (0 for baseline)")
	cmd.Flags().StringVar(&req.Name, "name", "", "Project name")
	cmd.Flags().StringVar(&req.ProjectNumber, "number", "", "Project number (allocated when empty)")
	cmd.Flags().Int64("segment", 0, "Segment function id")
	cmd.Flags().Float64Var(&req.Budget, "budget", 0, "Budget")
	cmd.Flags().Float64Var(&req.ActualCost, "actual", 0, "Actual cost to date")
	cmd.Flags().Float64Var(&req.ForecastCost, "forecast", 0, "Forecast cost")
	cmd.Flags().String("start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().String("end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().String("desired", "", "Desired completion date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&health, "health", "", "Health status: Green, Yellow or Red")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newProjectListCmd(a *App) *cobra.Command {
	var scenario int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List active projects in a scenario",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.actor(cmd)
			if err != nil {
				return err
			}
			list, err := a.Planning.ListProjects(cmd.Context(), u, contract.ScenarioScope(scenario))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectList(list))
			return nil
		},
	}
	cmd.Flags().Int64Var(&scenario, "scenario", 0, "Scenario id (0 for baseline)")
	return cmd
}

func newProjectUpdateCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Edit a project",
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
			patch := contract.ProjectPatch{
				ProjectNumber:     changedString(cmd, "number"),
				Name:              changedString(cmd, "name"),
				SegmentFunctionID: idFlag(cmd, "segment"),
				Budget:            changedFloat(cmd, "budget"),
				ActualCost:        changedFloat(cmd, "actual"),
				ForecastCost:      changedFloat(cmd, "forecast"),
			}
			if h := changedString(cmd, "health"); h != nil {
				status := domain.HealthStatus(*h)
				patch.HealthStatus = &status
			}
			if patch.StartDate, err = dateFlag(cmd, "start"); err != nil {
				return err
			}
			if patch.EndDate, err = dateFlag(cmd, "end"); err != nil {
				return err
			}
			if patch.ActualEndDate, err = dateFlag(cmd, "actual-end"); err != nil {
				return err
			}
			if patch.DesiredCompletionDate, err = dateFlag(cmd, "desired"); err != nil {
				return err
			}
			p, err := a.Planning.UpdateProject(cmd.Context(), u, id, patch)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated project %s [%s]\n", p.Name, p.ProjectNumber)
			return nil
		},
	}
	cmd.Flags().String("name", "", "New name")
	cmd.Flags().String("number", "", "New project number")
	cmd.Flags().Int64("segment", 0, "Segment function id (0 unlinks)")
	cmd.Flags().Float64("budget", 0, "Budget")
	cmd.Flags().Float64("actual", 0, "Actual cost to date")
	cmd.Flags().Float64("forecast", 0, "Forecast cost")
	cmd.Flags().String("start", "", "Start date (empty clears)")
	cmd.Flags().String("end", "", "End date (empty clears)")
	cmd.Flags().String("actual-end", "", "Actual end date (empty clears)")
	cmd.Flags().String("desired", "", "Desired completion date (empty clears)")
	cmd.Flags().String("health", "", "Health status: Green, Yellow or Red")
	return cmd
}

func newProjectRemoveCmd(a *App) *cobra.Command {
	return removeCmd(a, "project", func(cmd *cobra.Command, u *domain.User, id int64) error {
		return a.Planning.DeleteProject(cmd.Context(), u, id)
	})
}

func newResourceCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resource",
		Short: "Manage resources",
	}

	var req contract.CreateResourceRequest
	add := &cobra.Command{
		Use:   "add",
		Short: "Create a resource",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.actor(cmd)
			if err != nil {
				return err
			}
			req.CapacityPct = changedInt(cmd, "capacity")
			r := req.Resource()
			if err := a.Planning.CreateResource(cmd.Context(), u, r); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created resource %s [%d]\n", r.Name, r.ID)
			return nil
		},
	}
	add.Flags().Int64Var(&req.ScenarioID, "scenario", 0, "Scenario id (0 for baseline)")
	add.Flags().StringVar(&req.Name, "name", "", "Resource name")
	add.Flags().StringVar(&req.Email, "email", "", "Email")
	add.Flags().StringVar(&req.Department, "department", "", "Department")
	add.Flags().Int("capacity", 100, "Capacity percentage")
	_ = add.MarkFlagRequired("name")

	cmd.AddCommand(add, removeCmd(a, "resource", func(cmd *cobra.Command, u *domain.User, id int64) error {
		return a.Planning.DeleteResource(cmd.Context(), u, id)
	}))
	return cmd
}

func newMilestoneCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "milestone",
		Short: "Manage project milestones",
	}

	var req contract.CreateMilestoneRequest
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a milestone to a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.actor(cmd)
			if err != nil {
				return err
			}
			if req.StartDate, err = dateFlag(cmd, "start"); err != nil {
				return err
			}
			if req.EndDate, err = dateFlag(cmd, "due"); err != nil {
				return err
			}
			m := req.Milestone()
			if err := a.Planning.CreateMilestone(cmd.Context(), u, m); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created milestone %s [%d] due %s\n", m.Name, m.ID, formatter.Date(m.EndDate))
			return nil
		},
	}
	add.Flags().Int64Var(&req.ProjectID, "project", 0, "Project id")
	add.Flags().StringVar(&req.Name, "name", "", "Milestone name")
	add.Flags().String("start", "", "Start date (YYYY-MM-DD)")
	add.Flags().String("due", "", "Due date (YYYY-MM-DD)")
	_ = add.MarkFlagRequired("project")
	_ = add.MarkFlagRequired("name")

	cmd.AddCommand(add, removeCmd(a, "milestone", func(cmd *cobra.Command, u *domain.User, id int64) error {
		return a.Planning.DeleteMilestone(cmd.Context(), u, id)
	}))
	return cmd
}

func newDependencyCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "dependency",
		Aliases: []string{"dep"},
		Short:   "Manage dependencies between projects and milestones",
	}

	var req contract.CreateDependencyRequest
	var from, to endpointValue
	var depType string
	add := &cobra.Command{
		Use:   "add",
		Short: "Link a predecessor to a successor",
		Example: "  horizon dependency add --scenario 3 --from project:12 --to milestone:4@start --type FS\n" +
			"  horizon dep add --scenario 3 --from project:12 --to project:13 --lag 5",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.actor(cmd)
			if err != nil {
				return err
			}
			req.Predecessor, req.Successor = from.ep, to.ep
			req.DependencyType = domain.DependencyType(depType)
			d := req.Dependency()
			if err := a.Planning.CreateDependency(cmd.Context(), u, d); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created dependency %d: %s → %s (%s)\n", d.ID, d.Predecessor, d.Successor, d.DependencyType)
			return nil
		},
	}
	add.Flags().Int64Var(&req.ScenarioID, "scenario", 0, "Scenario id (0 for baseline)")
	add.Flags().Var(&from, "from", "Predecessor endpoint")
	add.Flags().Var(&to, "to", "Successor endpoint")
	add.Flags().StringVar(&depType, "type", string(domain.DependencyFS), "FS, SS, FF or SF")
	add.Flags().IntVar(&req.LagDays, "lag", 0, "Lag in days")
	_ = add.MarkFlagRequired("from")
	_ = add.MarkFlagRequired("to")

	cmd.AddCommand(add, removeCmd(a, "dependency", func(cmd *cobra.Command, u *domain.User, id int64) error {
		return a.Planning.DeleteDependency(cmd.Context(), u, id)
	}))
	return cmd
}

// skillFlags binds the application/technology/role/proficiency flags shared
// by requirements and capabilities.
func skillFlags(cmd *cobra.Command, s *domain.Skill, level *string) {
	cmd.Flags().StringVar(&s.Application, "app", "", "Application")
	cmd.Flags().StringVar(&s.Technology, "tech", "", "Technology")
	cmd.Flags().StringVar(&s.Role, "role", "", "Role")
	cmd.Flags().StringVar(level, "proficiency", string(domain.ProficiencyIntermediate),
		"Beginner, Intermediate, Advanced or Expert")
}

func newRequirementCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "requirement",
		Short: "Manage project skill requirements",
	}

	var req contract.CreateRequirementRequest
	var level string
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a skill requirement to a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.actor(cmd)
			if err != nil {
				return err
			}
			req.Proficiency = domain.Proficiency(level)
			r := req.Requirement()
			if err := a.Planning.CreateRequirement(cmd.Context(), u, r); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created requirement %d: %s/%s/%s %s x%d\n",
				r.ID, r.Application, r.Technology, r.Role, r.Proficiency, r.RequiredCount)
			return nil
		},
	}
	add.Flags().Int64Var(&req.ProjectID, "project", 0, "Project id")
	add.Flags().IntVar(&req.RequiredCount, "count", 1, "People required")
	skillFlags(add, &req.Skill, &level)
	_ = add.MarkFlagRequired("project")

	cmd.AddCommand(add, removeCmd(a, "requirement", func(cmd *cobra.Command, u *domain.User, id int64) error {
		return a.Planning.DeleteRequirement(cmd.Context(), u, id)
	}))
	return cmd
}

func newCapabilityCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "capability",
		Short: "Manage resource capabilities",
	}

	var req contract.CreateCapabilityRequest
	var level string
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a capability to a resource",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.actor(cmd)
			if err != nil {
				return err
			}
			req.Proficiency = domain.Proficiency(level)
			c := req.Capability()
			if err := a.Planning.CreateCapability(cmd.Context(), u, c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created capability %d: %s/%s/%s %s\n",
				c.ID, c.Application, c.Technology, c.Role, c.Proficiency)
			return nil
		},
	}
	add.Flags().Int64Var(&req.ResourceID, "resource", 0, "Resource id")
	add.Flags().BoolVar(&req.IsPrimary, "primary", false, "Primary skill")
	skillFlags(add, &req.Skill, &level)
	_ = add.MarkFlagRequired("resource")

	cmd.AddCommand(add, removeCmd(a, "capability", func(cmd *cobra.Command, u *domain.User, id int64) error {
		return a.Planning.DeleteCapability(cmd.Context(), u, id)
	}))
	return cmd
}

// removeCmd builds "<noun> remove ID" around a delete use case.
func removeCmd(a *App, noun string, del func(*cobra.Command, *domain.User, int64) error) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Soft-delete a " + noun,
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
			if err := del(cmd, u, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s %d\n", noun, id)
			return nil
		},
	}
}
