package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alexanderramin/horizon/internal/cli/formatter"
	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

const actorFlag = "as"

var errNoActor = errors.New("no acting user: pass --as or set HORIZON_USER")

// actor resolves the acting user from --as, then $HORIZON_USER.
func (a *App) actor(cmd *cobra.Command) (*domain.User, error) {
	name, _ := cmd.Flags().GetString(actorFlag)
	if strings.TrimSpace(name) == "" {
		name = os.Getenv("HORIZON_USER")
	}
	if strings.TrimSpace(name) == "" {
		return nil, errNoActor
	}
	u, err := a.Users.GetByName(cmd.Context(), strings.TrimSpace(name))
	if err != nil {
		return nil, fmt.Errorf("resolving user %q: %w", name, err)
	}
	return u, nil
}

// confirm guards destructive commands. --yes skips the prompt; without it a
// non-interactive session refuses.
func (a *App) confirm(title string, yes bool) error {
	if yes {
		return nil
	}
	if a.IsInteractive == nil || !a.IsInteractive() {
		return fmt.Errorf("%s: rerun with --yes to confirm", strings.TrimSuffix(title, "?"))
	}
	ask := a.Confirm
	if ask == nil {
		ask = huhConfirm
	}
	ok, err := ask(title)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("aborted")
	}
	return nil
}

func huhConfirm(title string) (bool, error) {
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).WithTheme(horizonHuhTheme()).WithShowHelp(false).Run()
	return ok, err
}

func horizonHuhTheme() *huh.Theme {
	t := huh.ThemeBase()
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	return t
}
