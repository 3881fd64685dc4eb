package pgerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestClassification(t *testing.T) {
	exclusion := fmt.Errorf("insert booking: %w", &pq.Error{Code: "23P01", Constraint: "bookings_no_overlap"})
	unique := &pq.Error{Code: "23505"}
	serialization := fmt.Errorf("commit: %w", &pq.Error{Code: "40001"})
	plain := errors.New("connection reset")

	assert.True(t, IsExclusionViolation(exclusion))
	assert.Equal(t, "bookings_no_overlap", Constraint(exclusion))
	assert.False(t, IsUniqueViolation(exclusion))

	assert.True(t, IsUniqueViolation(unique))
	assert.True(t, IsSerializationFailure(serialization))

	assert.False(t, IsExclusionViolation(plain))
	assert.False(t, IsSerializationFailure(plain))
	assert.Empty(t, Constraint(plain))
}
