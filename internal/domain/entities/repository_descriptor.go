package entities

import (
	"errors"
	"strings"
)

// DefaultRepositoryDescription is used when the caller does not describe a new repository.
const DefaultRepositoryDescription = "SQL Playground Repository"

// RepositoryDescriptor is the input for creating a repository on the provider.
// New repositories are always public and initialized with a README.
type RepositoryDescriptor struct {
	Name        string
	Description string
}

// Normalize trims the name and applies the default description.
func (d RepositoryDescriptor) Normalize() RepositoryDescriptor {
	d.Name = strings.TrimSpace(d.Name)
	if strings.TrimSpace(d.Description) == "" {
		d.Description = DefaultRepositoryDescription
	}
	return d
}

// Validate rejects descriptors the provider would refuse.
func (d RepositoryDescriptor) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return errors.New("Repository name is required") //nolint:stylecheck // user-facing message
	}
	return nil
}
