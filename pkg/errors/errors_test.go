package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bankops/atmrecon/pkg/errors"
)

func TestStructuralError(t *testing.T) {
	err := errors.NewStructuralError("exclusions", "start date", []string{"DATE", "START"}, false)
	assert.Contains(t, err.Error(), "missing start date column")
	assert.Contains(t, err.Error(), "exclusions")
	assert.True(t, errors.IsStructural(err))
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	amb := errors.NewStructuralError("vendor", "code", []string{"CODE"}, true)
	assert.Contains(t, amb.Error(), "ambiguous code column")

	var se *errors.StructuralError
	assert.True(t, errors.AsStructural(amb, &se))
	assert.True(t, se.Ambiguous)
}

func TestSourceErrorUnwrap(t *testing.T) {
	inner := errors.NewStructuralError("vendor", "work order", []string{"WO"}, false)
	err := errors.WrapSource("vendor", inner)

	assert.Contains(t, err.Error(), "cannot process source vendor")
	assert.True(t, errors.IsStructural(err), "structural cause survives wrapping")
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	assert.Nil(t, errors.WrapSource("vendor", nil))
}

func TestSentinelHelpers(t *testing.T) {
	assert.True(t, errors.IsNotFound(fmt.Errorf("lookup: %w", errors.ErrNotFound)))
	assert.False(t, errors.IsNotFound(errors.ErrEmptyTable))

	assert.True(t, errors.IsTicketLogUnusable(errors.ErrTicketLogUnusable))
	assert.False(t, errors.IsTicketLogUnusable(errors.ErrNotFound))
}

func TestWrapHelpers(t *testing.T) {
	cause := errors.New("disk gone")

	ioErr := errors.WrapIO("open", "/tmp/x.csv", cause)
	assert.Contains(t, ioErr.Error(), "IO error during open of /tmp/x.csv")
	assert.ErrorIs(t, ioErr, cause)
	assert.Nil(t, errors.WrapIO("open", "x", nil))

	parseErr := errors.WrapParse("csv", "x.csv", cause)
	assert.Contains(t, parseErr.Error(), "parse error in csv file x.csv")
	assert.ErrorIs(t, parseErr, cause)
	assert.Nil(t, errors.WrapParse("csv", "x", nil))
}

func TestConfigError(t *testing.T) {
	err := errors.NewConfigError("tolerance", "tolerance must be between 0 and 120 minutes", nil)
	assert.Contains(t, err.Error(), "configuration error in tolerance")
}
