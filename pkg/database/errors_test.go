package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestUniqueViolation(t *testing.T) {
	wrapped := fmt.Errorf("create student: %w", &pq.Error{Code: "23505", Constraint: "students_username_key"})
	constraint, ok := UniqueViolation(wrapped)
	assert.True(t, ok)
	assert.Equal(t, "students_username_key", constraint)

	_, ok = UniqueViolation(&pq.Error{Code: "23503"})
	assert.False(t, ok)

	_, ok = UniqueViolation(errors.New("boom"))
	assert.False(t, ok)
}

func TestForeignKeyViolation(t *testing.T) {
	assert.True(t, ForeignKeyViolation(fmt.Errorf("enroll: %w", &pq.Error{Code: "23503"})))
	assert.False(t, ForeignKeyViolation(&pq.Error{Code: "23505"}))
}
