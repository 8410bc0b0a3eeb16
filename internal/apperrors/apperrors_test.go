package apperrors_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/sapphire-relay/internal/apperrors"
)

var errBoom = errors.New("boom")

func TestKinds(t *testing.T) {
	cfgErr := apperrors.NewConfig("parse destination", errBoom)
	require.Error(t, cfgErr)
	assert.True(t, apperrors.IsConfig(cfgErr))
	assert.False(t, apperrors.IsOperational(cfgErr))
	assert.ErrorIs(t, cfgErr, errBoom)
	assert.Equal(t, "config: parse destination: boom", cfgErr.Error())

	opErr := apperrors.NewOperational("", errBoom)
	assert.True(t, apperrors.IsOperational(opErr))
	assert.Equal(t, "operational: boom", opErr.Error())
}

func TestWrappedKindSurvivesPkgErrors(t *testing.T) {
	err := errors.Wrap(apperrors.NewConfig("derive", errBoom), "failed to start relay")
	assert.True(t, apperrors.IsConfig(err))
	assert.ErrorIs(t, err, errBoom)
}

func TestNilAndDoubleWrap(t *testing.T) {
	assert.NoError(t, apperrors.NewConfig("x", nil))

	once := apperrors.NewOperational("submit", errBoom)
	twice := apperrors.NewOperational("cycle", once)
	assert.Same(t, once, twice)

	assert.Equal(t, apperrors.Kind(""), apperrors.KindOf(errBoom))
}
