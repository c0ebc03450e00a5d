package search

import (
	"strings"

	"github.com/hcs-labs/hub/internal/models"
	"github.com/hcs-labs/hub/internal/state"
)

// Result holds the derived views for one query: the chats to show per
// project, the matching user chats, and the projects that must be forced
// open so their matches are visible.
type Result struct {
	FilteredChats     map[string][]models.Chat
	FilteredUserChats []models.UserChat
	Expand            map[string]bool
}

// Filter computes the sidebar views for a query. Matching is plain
// case-insensitive substring search; source order is preserved and there is
// no ranking.
//
// An empty (or whitespace-only) query is the identity: the filtered views
// are copies of the canonical collections and no expansions are forced.
// Otherwise a project whose name matches contributes all of its chats;
// any other project contributes only the chats matching on title or preview,
// and is omitted entirely when nothing matches.
func Filter(st *state.State, query string) Result {
	result := Result{
		FilteredChats: make(map[string][]models.Chat),
		Expand:        make(map[string]bool),
	}

	query = strings.TrimSpace(query)
	if query == "" {
		for _, project := range st.Projects {
			result.FilteredChats[project.ID] = append([]models.Chat(nil), st.Chats[project.ID]...)
		}
		result.FilteredUserChats = append([]models.UserChat(nil), st.UserChats...)
		return result
	}

	needle := strings.ToLower(query)

	for _, project := range st.Projects {
		chats := st.Chats[project.ID]

		if contains(project.Name, needle) {
			result.FilteredChats[project.ID] = append([]models.Chat(nil), chats...)
			result.Expand[project.ID] = true
			continue
		}

		var matched []models.Chat
		for _, chat := range chats {
			if contains(chat.Title, needle) || contains(chat.Preview, needle) {
				matched = append(matched, chat)
			}
		}
		if len(matched) > 0 {
			result.FilteredChats[project.ID] = matched
			result.Expand[project.ID] = true
		}
	}

	for _, chat := range st.UserChats {
		if contains(chat.Username, needle) || contains(chat.LastMessage, needle) {
			result.FilteredUserChats = append(result.FilteredUserChats, chat)
		}
	}

	return result
}

func contains(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}
