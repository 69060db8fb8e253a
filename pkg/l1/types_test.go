package l1

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseControllerRef(t *testing.T) {
	ref, err := ParseControllerRef("cutebot/a1b2")
	require.NoError(t, err)
	require.Equal(t, ControllerRef{Type: "cutebot", ID: "a1b2"}, ref)
	require.Equal(t, "cutebot/a1b2", ref.String())
	require.True(t, ref.IsValid())

	for _, s := range []string{"", "cutebot", "cutebot/", "/a1", "a/b/c"} {
		_, err := ParseControllerRef(s)
		require.Error(t, err, s)
	}
	require.False(t, ControllerRef{Type: "a/b", ID: "c"}.IsValid())
}
