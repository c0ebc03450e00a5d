package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hcs-labs/hub/internal/search"
)

func NewSearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search chats and direct chats",
		Long: `Filter project chats and direct chats by case-insensitive substring match.
Project names match all of their chats; otherwise chats match on title or
preview and direct chats on username or last message.`,
		Example: `  hub search audit
  hub search "max"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(joinArgs(args))
		},
	}
}

func runSearch(query string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	snapshot := e.store.Snapshot()
	result := search.Filter(snapshot, query)

	if err := e.store.ApplyFilter(result.FilteredChats, result.FilteredUserChats, result.Expand); err != nil {
		return fmt.Errorf("failed to apply filter: %w", err)
	}

	total := 0
	for _, project := range snapshot.Projects {
		chats, ok := result.FilteredChats[project.ID]
		if !ok {
			continue
		}
		fmt.Printf("%s\n", project.Name)
		for _, chat := range chats {
			fmt.Printf("  %s", chat.Title)
			if chat.Preview != "" {
				fmt.Printf("  (%s)", chat.Preview)
			}
			fmt.Println()
			total++
		}
	}

	if len(result.FilteredUserChats) > 0 {
		fmt.Println("Direct chats:")
		for _, chat := range result.FilteredUserChats {
			fmt.Printf("  %s", chat.Username)
			if chat.LastMessage != "" {
				fmt.Printf("  (%s)", chat.LastMessage)
			}
			fmt.Println()
			total++
		}
	}

	if total == 0 {
		fmt.Println("No results found.")
	}
	return nil
}
