package countries

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAlpha2(t *testing.T) {
	testCases := []struct {
		code3 string
		code2 string
		ok    bool
	}{
		{code3: "SWE", code2: "SE", ok: true},
		{code3: "gbr", code2: "GB", ok: true},
		{code3: " MKD ", code2: "MK", ok: true},
		{code3: "EUU"},
		{code3: ""},
	}

	for _, test := range testCases {
		code2, ok := Alpha2(test.code3)
		require.Equal(t, test.ok, ok, test.code3)
		require.Equal(t, test.code2, code2, test.code3)
	}
}

func TestEuropean(t *testing.T) {
	require.Equal(t, 44, European())
	require.True(t, IsEuropean("se"))
	require.True(t, IsEuropean("VA"))
	require.False(t, IsEuropean("RU"))
	require.False(t, IsEuropean("TR"))

	for code2 := range european {
		found := false
		for _, c := range alpha3 {
			if c == code2 {
				found = true
			}
		}
		require.True(t, found, "%s has no alpha-3 code", code2)
	}
}
