package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTOD(t *testing.T) {
	got, err := normalizeTOD("07:30")
	require.NoError(t, err)
	assert.Equal(t, "07:30:00", got)

	got, err = normalizeTOD("13:05:45")
	require.NoError(t, err)
	assert.Equal(t, "13:05:45", got)

	got, err = normalizeTOD("  08:15 ")
	require.NoError(t, err)
	assert.Equal(t, "08:15:00", got)

	_, err = normalizeTOD("7.30")
	assert.Error(t, err)
	_, err = normalizeTOD("25:00")
	assert.Error(t, err)
	_, err = normalizeTOD("")
	assert.Error(t, err)
}
