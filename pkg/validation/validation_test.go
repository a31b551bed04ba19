package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResult_CollectsAllViolations(t *testing.T) {
	var v Result
	v.Require("name", "", "Name is required")
	v.Email("email", "not-an-email", "Please include a valid email")
	v.MinLen("password", "abc", 6, "Password must be at least 6 characters")

	assert.False(t, v.OK())
	violations := v.Violations()
	assert.Len(t, violations, 3)
	// Declaration order is preserved.
	assert.Equal(t, "name", violations[0].Param)
	assert.Equal(t, "email", violations[1].Param)
	assert.Equal(t, "password", violations[2].Param)
}

func TestResult_PassingChecks(t *testing.T) {
	var v Result
	v.Require("name", "Ada", "Name is required")
	v.Email("email", "ada@example.com", "Please include a valid email")
	v.MinLen("password", "longenough", 6, "too short")
	assert.True(t, v.OK())
}

func TestDateOrder(t *testing.T) {
	t.Run("from after to is a violation", func(t *testing.T) {
		var v Result
		v.DateOrder("from", "2023-05-01", "2022-01-01", "'From' date must be before 'to' date")
		assert.False(t, v.OK())
	})

	t.Run("from before to passes", func(t *testing.T) {
		var v Result
		v.DateOrder("from", "2021-05-01", "2022-01-01", "bad order")
		assert.True(t, v.OK())
	})

	t.Run("missing to is not this check's concern", func(t *testing.T) {
		var v Result
		v.DateOrder("from", "2021-05-01", "", "bad order")
		assert.True(t, v.OK())
	})
}
