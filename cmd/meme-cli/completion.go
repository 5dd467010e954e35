package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/posener/complete"
	"github.com/willabides/kongplete"

	"github.com/user/memecli/pkg/adapters/ggrenderer"
	"github.com/user/memecli/pkg/adapters/logger"
	"github.com/user/memecli/pkg/adapters/osfilesystem"
	"github.com/user/memecli/pkg/config"
	"github.com/user/memecli/pkg/library"
)

// CompletionCmd prints the shell code that enables tab completion.
type CompletionCmd struct {
	Shell string `arg:"" enum:"bash,zsh,fish" help:"Shell to generate completions for (bash, zsh, fish)."`
}

// Run executes the completion command.
func (cmd *CompletionCmd) Run(ctx *kong.Context) error {
	bin, err := os.Executable()
	if err != nil {
		bin = ctx.Model.Name
	}
	script, err := completionScript(cmd.Shell, ctx.Model.Name, bin)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(ctx.Stdout, script)
	return err
}

// completionScript returns shell code that asks bin for completions of name.
// bin answers through kongplete when COMP_LINE is set.
func completionScript(shell, name, bin string) (string, error) {
	switch shell {
	case "bash":
		return fmt.Sprintf("complete -C %q %s\n", bin, name), nil
	case "zsh":
		return fmt.Sprintf("autoload -U +X bashcompinit && bashcompinit\ncomplete -o nospace -C %q %s\n", bin, name), nil
	case "fish":
		return fmt.Sprintf(`function __complete_%[1]s
    set -lx COMP_LINE (commandline -cp)
    test -z (commandline -ct)
    and set COMP_LINE "$COMP_LINE "
    %[2]q
end
complete -f -c %[1]s -a "(__complete_%[1]s)"
`, name, bin), nil
	default:
		return "", fmt.Errorf("unsupported shell %q", shell)
	}
}

// registerCompletion answers completion requests and exits when the shell
// invoked the binary for them.
func registerCompletion(parser *kong.Kong) {
	kongplete.Complete(parser,
		kongplete.WithPredictor("template", complete.PredictFunc(predictTemplates)),
		kongplete.WithPredictor("file", complete.PredictFiles("*")),
	)
}

// predictTemplates lists the templates of the default configuration.
func predictTemplates(complete.Args) []string {
	cfg, err := config.Load("")
	if err != nil {
		return nil
	}
	lib := library.New(cfg, osfilesystem.New(), ggrenderer.New(nil), nil, logger.NewNoop())
	names, err := lib.List()
	if err != nil {
		return nil
	}
	return names
}
