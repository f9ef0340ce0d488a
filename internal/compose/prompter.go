package compose

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
)

// Prompter asks the user the occasional question during a send or
// initialize flow. The TUI routes these through its own views; the CLI
// uses the huh-backed implementation below.
type Prompter interface {
	// Confirm asks a yes/no question. Aborting counts as "no".
	Confirm(prompt string) (bool, error)

	// Input asks for a free-form line, offering suggestions for
	// completion.
	Input(prompt, placeholder string, suggestions []string) (string, error)

	// Select asks the user to pick one of the options.
	Select(prompt string, options []string) (string, error)
}

// AssumeYes answers every confirmation with yes, for flows where the
// caller has already confirmed: the TUI's own dialogs, --yes flags.
// Input yields an empty line and Select the first option.
type AssumeYes struct{}

func (AssumeYes) Confirm(string) (bool, error) { return true, nil }

func (AssumeYes) Input(string, string, []string) (string, error) { return "", nil }

func (AssumeYes) Select(_ string, options []string) (string, error) {
	if len(options) == 0 {
		return "", nil
	}
	return options[0], nil
}

// HuhPrompter renders prompts as standalone huh forms on the terminal.
type HuhPrompter struct{}

func (HuhPrompter) Confirm(prompt string) (bool, error) {
	var ok bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(prompt).
			Affirmative("Yes").
			Negative("No").
			Value(&ok),
	))
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, fmt.Errorf("confirm prompt: %w", err)
	}
	return ok, nil
}

func (HuhPrompter) Input(prompt, placeholder string, suggestions []string) (string, error) {
	var value string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(prompt).
			Placeholder(placeholder).
			Suggestions(suggestions).
			Value(&value),
	))
	if err := form.Run(); err != nil {
		return "", fmt.Errorf("input prompt: %w", err)
	}
	return value, nil
}

func (HuhPrompter) Select(prompt string, options []string) (string, error) {
	var value string
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title(prompt).
			Options(huh.NewOptions(options...)...).
			Value(&value),
	))
	if err := form.Run(); err != nil {
		return "", fmt.Errorf("select prompt: %w", err)
	}
	return value, nil
}
