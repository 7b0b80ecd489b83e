package repository_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amirhossein-jamali/account-opening-service/internal/infrastructure/adapter/repository"
)

func TestErrorClassifier(t *testing.T) {
	classifier := repository.NewErrorClassifier()

	t.Run("Classify", func(t *testing.T) {
		testCases := []struct {
			name     string
			err      error
			expected repository.ErrorType
		}{
			{"nil error", nil, ""},
			{"postgres duplicate key", errors.New(`duplicate key value violates unique constraint "idx_accounts_account_number"`), repository.DuplicateKeyError},
			{"sqlite unique constraint", errors.New("UNIQUE constraint failed: accounts.account_number"), repository.DuplicateKeyError},
			{"mysql duplicate entry", errors.New("Error 1062: Duplicate entry 'ACC-1001' for key 'account_number'"), repository.DuplicateKeyError},
			{"postgres foreign key", errors.New(`insert or update on table "accounts" violates foreign key constraint "fk_users_accounts"`), repository.ForeignKeyError},
			{"sqlite foreign key", errors.New("FOREIGN KEY constraint failed"), repository.ForeignKeyError},
			{"connection refused", errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"), repository.ConnectionError},
			{"timeout", errors.New("read timeout while waiting for response"), repository.ConnectionError},
			{"not null violation", errors.New(`null value in column "email" violates not-null constraint`), repository.ConstraintError},
			{"unrelated error", errors.New("something else entirely"), repository.ErrorType("")},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				assert.Equal(t, tc.expected, classifier.Classify(tc.err))
			})
		}
	})

	t.Run("Duplicate and foreign key errors also count as constraint errors", func(t *testing.T) {
		dup := errors.New("UNIQUE constraint failed: accounts.account_number")
		fk := errors.New("FOREIGN KEY constraint failed")

		assert.True(t, classifier.IsConstraintError(dup))
		assert.True(t, classifier.IsConstraintError(fk))

		// Classify still reports the more specific type
		assert.Equal(t, repository.DuplicateKeyError, classifier.Classify(dup))
		assert.Equal(t, repository.ForeignKeyError, classifier.Classify(fk))
	})

	t.Run("Nil is never classified", func(t *testing.T) {
		assert.False(t, classifier.IsDuplicateKeyError(nil))
		assert.False(t, classifier.IsForeignKeyError(nil))
		assert.False(t, classifier.IsConnectionError(nil))
		assert.False(t, classifier.IsConstraintError(nil))
	})
}
