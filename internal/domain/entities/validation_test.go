//go:build unit

package entities_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/sqlplayground/internal/domain/entities"
)

func TestRepositoryDescriptor(t *testing.T) {
	t.Parallel()

	t.Run("should trim the name and default the description", func(t *testing.T) {
		t.Parallel()

		// given
		descriptor := entities.RepositoryDescriptor{Name: "  demo  ", Description: " "}

		// when
		normalized := descriptor.Normalize()

		// then
		assert.Equal(t, "demo", normalized.Name)
		assert.Equal(t, "SQL Playground Repository", normalized.Description)
		assert.NoError(t, normalized.Validate())
	})

	t.Run("should keep a custom description", func(t *testing.T) {
		t.Parallel()

		// given
		descriptor := entities.RepositoryDescriptor{Name: "demo", Description: "mine"}

		// when
		normalized := descriptor.Normalize()

		// then
		assert.Equal(t, "mine", normalized.Description)
	})

	t.Run("should require a name", func(t *testing.T) {
		t.Parallel()

		// given
		descriptor := entities.RepositoryDescriptor{Name: "\t"}

		// when
		err := descriptor.Validate()

		// then
		require.EqualError(t, err, "Repository name is required")
	})
}

func TestFileCommit(t *testing.T) {
	t.Parallel()

	t.Run("should pin the branch and default the message", func(t *testing.T) {
		t.Parallel()

		// given
		commit := entities.FileCommit{Owner: " o ", Repo: "r", Path: "/a/b.sql/", Branch: "dev"}

		// when
		normalized := commit.Normalize()

		// then
		assert.Equal(t, "o", normalized.Owner)
		assert.Equal(t, "a/b.sql", normalized.Path)
		assert.Equal(t, "main", normalized.Branch)
		assert.Equal(t, "Add file from SQL Playground", normalized.Message)
	})

	t.Run("should keep an explicit message and empty content", func(t *testing.T) {
		t.Parallel()

		// given
		commit := entities.FileCommit{Owner: "o", Repo: "r", Path: "p", Message: "custom"}

		// when
		normalized := commit.Normalize()

		// then
		assert.Equal(t, "custom", normalized.Message)
		assert.Empty(t, normalized.Content)
		assert.NoError(t, normalized.Validate())
	})

	t.Run("Validate", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name     string
			path     string
			expected string
		}{
			{name: "should accept dots inside a file name", path: "queries/report..v2.sql"},
			{name: "should accept a trailing run of dots", path: "notes...sql"},
			{name: "should accept a dotted directory", path: "..hidden/q.sql"},
			{name: "should reject a parent segment", path: "../q.sql", expected: "File path must not contain '..'"},
			{name: "should reject a nested parent segment", path: "a/../../q.sql", expected: "File path must not contain '..'"},
			{name: "should reject a blank path", path: " / ", expected: "File path is required"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				// given
				commit := entities.FileCommit{Owner: "o", Repo: "r", Path: tt.path}

				// when
				err := commit.Validate()

				// then
				if tt.expected == "" {
					assert.NoError(t, err)
					return
				}
				require.Error(t, err)
				assert.Equal(t, tt.expected, err.Error())
			})
		}
	})
}

func TestQueryRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		query    string
		expected string
	}{
		{name: "should accept a regular query", query: "SELECT 1"},
		{name: "should accept a query at the limit", query: strings.Repeat("a", entities.MaxQueryLength)},
		{name: "should reject a blank query", query: " \t\n", expected: "Query cannot be empty"},
		{
			name:     "should reject a query over the limit",
			query:    strings.Repeat("a", entities.MaxQueryLength+1),
			expected: "Query cannot exceed 10000 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// given
			request := entities.QueryRequest{Query: tt.query}

			// when
			err := request.Validate()

			// then
			if tt.expected == "" {
				assert.NoError(t, err)
				return
			}
			require.EqualError(t, err, tt.expected)
		})
	}
}

func TestControllerBind(t *testing.T) {
	t.Parallel()

	t.Run("should build a method-scoped pattern", func(t *testing.T) {
		t.Parallel()

		// given
		bind := entities.ControllerBind{Method: "GET", Path: "/health"}

		// when
		pattern := bind.Pattern()

		// then
		assert.Equal(t, "GET /health", pattern)
	})
}
