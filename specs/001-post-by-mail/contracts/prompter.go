// Package contracts/prompter defines the interactive prompt interface.
// Flows that need an answer (confirmations, the title for a new post,
// the category) go through this seam so the same orchestration code
// serves the TUI, the headless commands, and the tests.
//
// Library: charmbracelet/huh (standalone forms)
package contracts

// Prompter asks the user one question at a time.
type Prompter interface {
	// Confirm asks a yes/no question. A decline is a normal answer,
	// not an error: callers treat (false, nil) as a quiet no-op.
	Confirm(prompt string) (bool, error)

	// Input asks for a line of text with an optional initial value and
	// completion suggestions. Suggestions never validate; any answer
	// is accepted.
	Input(prompt, initial string, suggestions []string) (string, error)

	// Select picks one of options.
	Select(prompt string, options []string) (string, error)
}

// Implementations:
//
// huh prompter:
//   One standalone huh form per question. A user abort (esc/ctrl+c)
//   maps to a decline, not an error.
//
// assume-yes prompter:
//   Answers every Confirm with yes, Input with the initial value, and
//   Select with the first option. Used where the caller has already
//   confirmed: the TUI's own dialog views, the --yes flag.
//
// scripted prompter (tests):
//   Fixed answers, records the prompts it saw.
