package clickhouse

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestCheckRefresh(t *testing.T) {
	tests := []struct {
		raw       string
		supported bool
	}{
		{raw: "23.11.5.29", supported: false},
		{raw: "23.12.1.1368", supported: true},
		{raw: "23.8.9.54-lts", supported: false},
		{raw: "24.3.2.23 (official build)", supported: true},
		{raw: "25.7", supported: true},
		{raw: "22.12.6.22", supported: false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			v, err := parseVersion(tt.raw)
			require.NoError(t, err)

			err = checkRefresh(v)
			if tt.supported {
				require.NoError(t, err)
				return
			}

			require.True(t, errors.Is(err, ErrRefreshUnsupported))
			require.Contains(t, err.Error(), "version "+v.String())
		})
	}
}

func TestParseVersion_ServerFormats(t *testing.T) {
	v, err := parseVersion("24.3.2.23 (official build)")
	require.NoError(t, err)
	require.Equal(t, &VersionInfo{Major: 24, Minor: 3, Patch: 2, Raw: "24.3.2.23 (official build)"}, v)
	require.Equal(t, "24.3.2", v.String())

	v, err = parseVersion("25.7")
	require.NoError(t, err)
	require.Equal(t, "25.7.0", v.String())

	for _, raw := range []string{"", "latest", "v24.3", "24"} {
		_, err := parseVersion(raw)
		require.Error(t, err, raw)
	}
}
