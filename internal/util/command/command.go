package command

import (
	"github.com/spf13/cobra"
)

// NewSubcommandGroup returns a command that only groups subCmds and prints its help when run
// without one.
func NewSubcommandGroup(name string, subCmds ...*cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   name,
		Short: name + " related subcommands",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(subCmds...)

	return cmd
}
