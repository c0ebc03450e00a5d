package localstore

import "fmt"

// Slot names. Each slot holds one JSON-encoded document, mirroring the
// storage layout the web client used.
const (
	KeyProjects         = "projects"
	KeyProjectChats     = "projectChats"
	KeyExpandedProjects = "expandedProjects"
	KeyUserChats        = "userChats"
	KeyMessages         = "messages"
	KeyProjectMetrics   = "projectMetrics"
	KeySession          = "hcs-user"
	KeyUsers            = "hcs-users"
	KeyUserSettings     = "hcs-user-settings"
)

// ChatMessagesKey returns the slot holding one user chat's message list.
func ChatMessagesKey(userChatID string) string {
	return fmt.Sprintf("chat_%s_messages", userChatID)
}
