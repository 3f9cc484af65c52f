package bot

// Profile 描述机器人自身的身份信息。
type Profile struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Welcome string `json:"welcome"`
}

// DefaultWelcome is sent to every participant that joins a conversation.
const DefaultWelcome = "Hello! I'm CampusHelp 🤖. I can help with deadlines, tutoring, or registration. Type 'menu' to see options."

// Default returns the CampusHelp profile. Empty id or name fall back to
// the built-in values.
func Default(id, name string) Profile {
	if id == "" {
		id = "campushelp-bot"
	}
	if name == "" {
		name = "CampusHelp"
	}
	return Profile{ID: id, Name: name, Welcome: DefaultWelcome}
}
