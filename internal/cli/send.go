package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hcs-labs/hub/internal/agent"
	"github.com/hcs-labs/hub/internal/models"
)

func NewSendCommand() *cobra.Command {
	var projectName string
	var chatTitle string

	cmd := &cobra.Command{
		Use:   "send <text>",
		Short: "Send a message and get the agent's reply",
		Long: `Send a message into a project's conversation. The scripted agent answers
after the configured latency; the command waits for the reply.`,
		Example: `  # Ask the agent inside a project
  hub send --project "Qualitätsmanagement" "hallo"

  # Attach the exchange to a specific chat
  hub send --project "Qualitätsmanagement" --chat "Chat 1" "Wie läuft der Prozess?"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSend(projectName, chatTitle, joinArgs(args))
		},
	}

	cmd.Flags().StringVar(&projectName, "project", "", "Project name")
	cmd.Flags().StringVar(&chatTitle, "chat", "", "Chat title within the project (optional)")
	cmd.MarkFlagRequired("project")
	return cmd
}

func runSend(projectName, chatTitle, text string) error {
	if strings.TrimSpace(text) == "" {
		fmt.Println("Nothing to send.")
		return nil
	}

	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	projectID, err := e.findProject(projectName)
	if err != nil {
		return err
	}

	var chatID string
	if chatTitle != "" {
		if _, chatID, err = e.findChat(projectName, chatTitle); err != nil {
			return err
		}
	}

	if _, err := e.store.AppendMessage(models.SenderUser, text, projectID); err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}
	if chatID != "" {
		if _, err := e.store.SetChatPreview(projectID, chatID, text); err != nil {
			return fmt.Errorf("failed to update chat preview: %w", err)
		}
	}

	scheduler := agent.NewScheduler()
	defer scheduler.Close()

	done := make(chan string, 1)
	scheduler.Schedule(projectID, text, e.cfg.ReplyDelay(), func(reply string) {
		done <- reply
	})

	reply := <-done
	if _, err := e.store.AppendMessage(models.SenderAgent, reply, projectID); err != nil {
		return fmt.Errorf("failed to append agent reply: %w", err)
	}
	if chatID != "" {
		if _, err := e.store.SetChatPreview(projectID, chatID, reply); err != nil {
			return fmt.Errorf("failed to update chat preview: %w", err)
		}
	}

	fmt.Printf("Agent: %s\n", reply)
	return nil
}

func joinArgs(args []string) string {
	return strings.Join(args, " ")
}
