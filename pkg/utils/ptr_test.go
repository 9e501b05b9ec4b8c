package utils_test

import (
	"testing"

	"github.com/pseudomuto/viewkeeper/pkg/utils"
	"github.com/stretchr/testify/require"
)

func TestPtrAndDeref(t *testing.T) {
	require.True(t, utils.Deref(utils.Ptr(true), false))
	require.False(t, utils.Deref(utils.Ptr(false), true))
	require.True(t, utils.Deref[bool](nil, true))
	require.Equal(t, "x", utils.Deref(nil, "x"))
}
