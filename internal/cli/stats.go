package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show hub statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats()
		},
	}
}

func runStats() error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	snapshot := e.store.Snapshot()

	totalChats := 0
	for _, chats := range snapshot.Chats {
		totalChats += len(chats)
	}

	fmt.Printf("Projects:     %d\n", len(snapshot.Projects))
	fmt.Printf("Chats:        %d\n", totalChats)
	fmt.Printf("Direct chats: %d\n", len(snapshot.UserChats))
	fmt.Printf("Messages:     %d\n", len(snapshot.Messages))
	fmt.Printf("Metrics:      %d\n", len(snapshot.Metrics))
	return nil
}
