package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewChatCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Manage project chats",
	}

	cmd.AddCommand(
		newChatNewCommand(),
		newChatRenameCommand(),
		newChatDeleteCommand(),
		newChatListCommand(),
	)

	return cmd
}

func newChatNewCommand() *cobra.Command {
	var projectName string

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Start a new chat in a project",
		Example: `  # New chat in a project (titled "Chat N")
  hub chat new --project "Qualitätsmanagement"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChatNew(projectName)
		},
	}

	cmd.Flags().StringVar(&projectName, "project", "", "Project name")
	cmd.MarkFlagRequired("project")
	return cmd
}

func runChatNew(projectName string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	projectID, err := e.findProject(projectName)
	if err != nil {
		return err
	}

	chat, created, err := e.store.CreateChat(projectID)
	if err != nil {
		return fmt.Errorf("failed to create chat: %w", err)
	}
	if !created {
		return fmt.Errorf("no project named %q", projectName)
	}
	fmt.Printf("✓ Created %q in project %q\n", chat.Title, projectName)
	return nil
}

func newChatRenameCommand() *cobra.Command {
	var projectName string

	cmd := &cobra.Command{
		Use:   "rename <chat-title> <new-title>",
		Short: "Rename a chat",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChatRename(projectName, args[0], args[1])
		},
	}

	cmd.Flags().StringVar(&projectName, "project", "", "Project name")
	cmd.MarkFlagRequired("project")
	return cmd
}

func runChatRename(projectName, title, newTitle string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	projectID, chatID, err := e.findChat(projectName, title)
	if err != nil {
		return err
	}

	renamed, err := e.store.RenameChat(projectID, chatID, newTitle)
	if err != nil {
		return fmt.Errorf("failed to rename chat: %w", err)
	}
	if !renamed {
		fmt.Println("Nothing renamed: the new title is empty.")
		return nil
	}
	fmt.Printf("✓ Renamed chat %q to %q\n", title, newTitle)
	return nil
}

func newChatDeleteCommand() *cobra.Command {
	var projectName string
	var skipConfirm bool

	cmd := &cobra.Command{
		Use:   "delete <chat-title>",
		Short: "Delete a chat",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChatDelete(projectName, args[0], skipConfirm)
		},
	}

	cmd.Flags().StringVar(&projectName, "project", "", "Project name")
	cmd.Flags().BoolVar(&skipConfirm, "yes", false, "Skip confirmation prompt")
	cmd.MarkFlagRequired("project")
	return cmd
}

func runChatDelete(projectName, title string, skipConfirm bool) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	projectID, chatID, err := e.findChat(projectName, title)
	if err != nil {
		return err
	}

	if !skipConfirm && !confirm(fmt.Sprintf("Delete chat %q?", title)) {
		fmt.Println("Cancelled.")
		return nil
	}

	if _, err := e.store.DeleteChat(projectID, chatID); err != nil {
		return fmt.Errorf("failed to delete chat: %w", err)
	}
	fmt.Printf("✓ Deleted chat %q\n", title)
	return nil
}

func newChatListCommand() *cobra.Command {
	var projectName string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List chats of a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChatList(projectName)
		},
	}

	cmd.Flags().StringVar(&projectName, "project", "", "Project name")
	cmd.MarkFlagRequired("project")
	return cmd
}

func runChatList(projectName string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	projectID, err := e.findProject(projectName)
	if err != nil {
		return err
	}

	snapshot := e.store.Snapshot()
	chats := snapshot.Chats[projectID]
	if len(chats) == 0 {
		fmt.Println("No chats yet.")
		return nil
	}

	for _, chat := range chats {
		fmt.Printf("%s  %s", chat.Date, chat.Title)
		if chat.Preview != "" {
			fmt.Printf("  (%s)", chat.Preview)
		}
		fmt.Println()
	}
	return nil
}

// findChat resolves a chat by title within a project.
func (e *env) findChat(projectName, title string) (projectID, chatID string, err error) {
	projectID, err = e.findProject(projectName)
	if err != nil {
		return "", "", err
	}

	snapshot := e.store.Snapshot()
	for _, chat := range snapshot.Chats[projectID] {
		if chat.Title == title {
			return projectID, chat.ID, nil
		}
	}
	return "", "", fmt.Errorf("no chat titled %q in project %q", title, projectName)
}
