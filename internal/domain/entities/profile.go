package entities

// ProviderDisplayName identifies the login provider in status responses.
const ProviderDisplayName = "GitHub OAuth2"

// Profile is the user-facing view of a session identity, with fallbacks applied.
type Profile struct {
	Login         string `json:"login"`
	Email         string `json:"email"`
	AvatarURL     string `json:"avatar_url"`
	Authenticated bool   `json:"authenticated"`
}

// AuthStatus summarizes whether the caller is signed in.
type AuthStatus struct {
	Authenticated bool   `json:"authenticated"`
	User          string `json:"user"`
	Provider      string `json:"provider"`
}
