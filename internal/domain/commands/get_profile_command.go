package commands

import "github.com/rios0rios0/sqlplayground/internal/domain/entities"

const (
	fallbackLogin  = "unknown"
	fallbackEmail  = "not provided"
	anonymousLogin = "anonymous"
)

// GetProfile is the interface for describing the caller.
type GetProfile interface {
	Execute(session *entities.Session) entities.Profile
	Status(session *entities.Session) entities.AuthStatus
}

// GetProfileCommand renders the session identity with display fallbacks.
type GetProfileCommand struct{}

// NewGetProfileCommand creates a new GetProfileCommand.
func NewGetProfileCommand() *GetProfileCommand {
	return &GetProfileCommand{}
}

// Execute returns the caller's profile.
func (it *GetProfileCommand) Execute(session *entities.Session) entities.Profile {
	login, ok := session.Login()
	if !ok {
		login = fallbackLogin
	}
	email, ok := session.Email()
	if !ok {
		email = fallbackEmail
	}
	avatarURL, _ := session.AvatarURL()

	return entities.Profile{
		Login:         login,
		Email:         email,
		AvatarURL:     avatarURL,
		Authenticated: session.IsAuthenticated(),
	}
}

// Status reports whether the caller is signed in.
func (it *GetProfileCommand) Status(session *entities.Session) entities.AuthStatus {
	return entities.AuthStatus{
		Authenticated: session.IsAuthenticated(),
		User:          displayLogin(session),
		Provider:      entities.ProviderDisplayName,
	}
}

// displayLogin names the caller in playground output.
func displayLogin(session *entities.Session) string {
	if login, ok := session.Login(); ok {
		return login
	}
	return anonymousLogin
}
