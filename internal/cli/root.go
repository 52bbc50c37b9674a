package cli

import (
	"github.com/alexanderramin/horizon/internal/app"
	"github.com/alexanderramin/horizon/internal/auth"
	"github.com/alexanderramin/horizon/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// App holds the services and process settings used by CLI commands.
type App struct {
	*app.Services

	Tokens *auth.TokenManager
	Logger *logrus.Logger
	Config config.Config

	// IsInteractive reports whether confirmation prompts can be shown.
	IsInteractive func() bool
	// Confirm asks a yes/no question. Nil uses a huh prompt.
	Confirm func(title string) (bool, error)
}

// NewRootCmd creates the top-level "horizon" command and registers all
// subcommands against the provided App.
func NewRootCmd(a *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "horizon",
		Short:         "Scenario planning for project portfolios",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String(actorFlag, "", "Act as this user (defaults to $HORIZON_USER)")

	root.AddCommand(
		newUserCmd(a),
		newTokenCmd(a),
		newSegmentCmd(a),
		newScenarioCmd(a),
		newProjectCmd(a),
		newResourceCmd(a),
		newMilestoneCmd(a),
		newDependencyCmd(a),
		newRequirementCmd(a),
		newCapabilityCmd(a),
		newAllocationCmd(a),
		newMatchCmd(a),
		newRiskCmd(a),
		newServeCmd(a),
	)
	return root
}
