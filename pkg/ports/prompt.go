package ports

// Prompter asks the user for input on an interactive terminal.
type Prompter interface {
	// Input asks a free-form question. validate may be nil.
	Input(message, help string, validate func(string) error) (string, error)

	// Confirm asks a yes/no question.
	Confirm(message string, def bool) (bool, error)
}
