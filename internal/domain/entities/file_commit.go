package entities

import (
	"errors"
	"strings"
)

const (
	// DefaultCommitMessage is used when the caller does not provide one.
	DefaultCommitMessage = "Add file from SQL Playground"

	// CommitBranch is the only branch files are committed to.
	CommitBranch = "main"
)

// FileCommit is the input for writing a single file through the provider contents API.
type FileCommit struct {
	Owner   string
	Repo    string
	Path    string
	Content string
	Message string
	Branch  string
	// SHA is the blob revision of the file being replaced; empty for new files.
	SHA string
}

// Normalize trims identifiers and fills in the default message and branch.
func (c FileCommit) Normalize() FileCommit {
	c.Owner = strings.TrimSpace(c.Owner)
	c.Repo = strings.TrimSpace(c.Repo)
	c.Path = strings.Trim(strings.TrimSpace(c.Path), "/")
	if strings.TrimSpace(c.Message) == "" {
		c.Message = DefaultCommitMessage
	}
	c.Branch = CommitBranch
	return c
}

// Validate checks the fields required to address the file.
func (c FileCommit) Validate() error {
	switch {
	case strings.TrimSpace(c.Owner) == "":
		return errors.New("Repository owner is required") //nolint:stylecheck // user-facing message
	case strings.TrimSpace(c.Repo) == "":
		return errors.New("Repository name is required") //nolint:stylecheck // user-facing message
	case strings.Trim(strings.TrimSpace(c.Path), "/") == "":
		return errors.New("File path is required") //nolint:stylecheck // user-facing message
	case hasParentSegment(c.Path):
		return errors.New("File path must not contain '..'") //nolint:stylecheck // user-facing message
	}
	return nil
}

// hasParentSegment reports whether any /-separated segment of path is "..".
func hasParentSegment(path string) bool {
	for _, segment := range strings.Split(strings.TrimSpace(path), "/") {
		if segment == ".." {
			return true
		}
	}
	return false
}
