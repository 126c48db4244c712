package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	require.Equal(t, "wireless-mouse", Slugify("Wireless Mouse"))
	require.Equal(t, "usb-c-cable-2m", Slugify("USB-C Cable (2m)"))
	require.Equal(t, "cafe", Slugify("--cafe--"))
}

func TestGenerateRandomHexString(t *testing.T) {
	token := GenerateRandomHexString(6)
	require.Len(t, token, 6)
	for _, c := range token {
		require.Contains(t, "0123456789abcdef", string(c))
	}
}

func TestParsePageParams(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/product/search?page=2&pageSize=5", nil)
	page, size := ParsePageParams(r, 3, 100)
	require.Equal(t, 2, page)
	require.Equal(t, 5, size)

	r = httptest.NewRequest("GET", "/api/product/search", nil)
	page, size = ParsePageParams(r, 3, 100)
	require.Equal(t, 1, page)
	require.Equal(t, 3, size)

	r = httptest.NewRequest("GET", "/api/product/search?page=-1&pageSize=100000", nil)
	page, size = ParsePageParams(r, 3, 100)
	require.Equal(t, 1, page)
	require.Equal(t, 100, size)
}
