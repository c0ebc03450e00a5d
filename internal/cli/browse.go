package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hcs-labs/hub/internal/tui"
)

func NewBrowseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse the hub in an interactive TUI",
		Long: `Open the interactive browser: a sidebar of projects and direct chats with
live search, and the conversation of whatever is selected.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse()
		},
	}
}

func runBrowse() error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	browser := tui.NewBrowser(e.store, e.cfg)
	if err := browser.Run(); err != nil {
		return fmt.Errorf("browser failed: %w", err)
	}
	return nil
}
