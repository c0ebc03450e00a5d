package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hcs-labs/hub/internal/models"
)

func NewPeerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "peer",
		Short: "Manage direct chats with other users",
	}

	cmd.AddCommand(
		newPeerNewCommand(),
		newPeerRenameCommand(),
		newPeerDeleteCommand(),
		newPeerListCommand(),
		newPeerSendCommand(),
		newPeerLogCommand(),
	)

	return cmd
}

func newPeerNewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "new <username>",
		Short: "Start a direct chat",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPeerNew(args[0])
		},
	}
}

func runPeerNew(username string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	chat, created, err := e.store.CreateUserChat(username)
	if err != nil {
		return fmt.Errorf("failed to create chat: %w", err)
	}
	if !created {
		fmt.Println("Nothing to create: username is empty.")
		return nil
	}
	fmt.Printf("✓ Started chat with %s\n", chat.Username)
	return nil
}

func newPeerRenameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <username> <new-name>",
		Short: "Rename a direct chat",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPeerRename(args[0], args[1])
		},
	}
}

func runPeerRename(username, newName string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	chat, err := e.findUserChat(username)
	if err != nil {
		return err
	}

	renamed, err := e.store.RenameUserChat(chat.ID, newName)
	if err != nil {
		return fmt.Errorf("failed to rename chat: %w", err)
	}
	if !renamed {
		fmt.Println("Nothing renamed: the new name is empty.")
		return nil
	}
	fmt.Printf("✓ Renamed chat %q to %q\n", username, newName)
	return nil
}

func newPeerDeleteCommand() *cobra.Command {
	var skipConfirm bool

	cmd := &cobra.Command{
		Use:   "delete <username>",
		Short: "Delete a direct chat and its message history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPeerDelete(args[0], skipConfirm)
		},
	}

	cmd.Flags().BoolVar(&skipConfirm, "yes", false, "Skip confirmation prompt")
	return cmd
}

func runPeerDelete(username string, skipConfirm bool) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	chat, err := e.findUserChat(username)
	if err != nil {
		return err
	}

	if !skipConfirm && !confirm(fmt.Sprintf("Delete chat with %q and its messages?", username)) {
		fmt.Println("Cancelled.")
		return nil
	}

	if _, err := e.store.DeleteUserChat(chat.ID); err != nil {
		return fmt.Errorf("failed to delete chat: %w", err)
	}
	fmt.Printf("✓ Deleted chat with %s\n", username)
	return nil
}

func newPeerListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List direct chats",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPeerList()
		},
	}
}

func runPeerList() error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	snapshot := e.store.Snapshot()
	if len(snapshot.UserChats) == 0 {
		fmt.Println("No direct chats.")
		return nil
	}

	for _, chat := range snapshot.UserChats {
		unread := ""
		if chat.Unread > 0 {
			unread = fmt.Sprintf(" (%d unread)", chat.Unread)
		}
		fmt.Printf("%-10s %s%s\n", chat.Timestamp, chat.Username, unread)
		if chat.LastMessage != "" {
			fmt.Printf("           %s\n", chat.LastMessage)
		}
	}
	return nil
}

func newPeerSendCommand() *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "send <text>",
		Short: "Send a message in a direct chat",
		Example: `  hub peer send --to "Max Mustermann" "Bis morgen!"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPeerSend(to, joinArgs(args))
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Username of the chat partner")
	cmd.MarkFlagRequired("to")
	return cmd
}

func runPeerSend(username, text string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	chat, err := e.findUserChat(username)
	if err != nil {
		return err
	}

	if _, err := e.store.AppendUserChatMessage(chat.ID, models.SenderUser, text); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	fmt.Printf("✓ Sent to %s\n", username)
	return nil
}

func newPeerLogCommand() *cobra.Command {
	var with string

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the messages of a direct chat",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPeerLog(with)
		},
	}

	cmd.Flags().StringVar(&with, "with", "", "Username of the chat partner")
	cmd.MarkFlagRequired("with")
	return cmd
}

func runPeerLog(username string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	chat, err := e.findUserChat(username)
	if err != nil {
		return err
	}

	messages, err := e.store.UserChatMessages(chat.ID)
	if err != nil {
		return fmt.Errorf("failed to read messages: %w", err)
	}
	if len(messages) == 0 {
		fmt.Println("No messages yet.")
		return nil
	}

	for _, message := range messages {
		fmt.Printf("[%s] %s: %s\n", message.Timestamp.Format("15:04"), message.Sender, message.Text)
	}
	return nil
}

// findUserChat resolves a direct chat by username.
func (e *env) findUserChat(username string) (models.UserChat, error) {
	snapshot := e.store.Snapshot()
	if chat := snapshot.UserChatByID(username); chat != nil {
		return *chat, nil
	}
	for _, chat := range snapshot.UserChats {
		if chat.Username == username {
			return chat, nil
		}
	}
	return models.UserChat{}, fmt.Errorf("no direct chat with %q", username)
}
