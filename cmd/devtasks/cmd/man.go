package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// NewManCommand creates the man command.
func NewManCommand() *cobra.Command {
	return &cobra.Command{
		Use:    "man",
		Short:  "Generate man page",
		Long:   `Generate man page for devtasks CLI tool.`,
		Hidden: true, // Hide from help output since it's mainly for internal use
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			header := &doc.GenManHeader{
				Title:   "DEVTASKS",
				Section: "1",
				Source:  "devtasks",
				Manual:  "devtasks Manual",
			}
			return doc.GenMan(cmd.Root(), header, cmd.OutOrStdout())
		},
	}
}
