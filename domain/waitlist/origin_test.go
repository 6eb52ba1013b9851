package waitlist

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientIP_Precedence(t *testing.T) {
	t.Run("connecting-ip header wins", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/waitlist", nil)
		req.Header.Set("CF-Connecting-IP", "203.0.113.7")
		req.Header.Set("X-Forwarded-For", "198.51.100.1, 10.0.0.1")

		origin := ExtractRequestOrigin(req)
		assert.Equal(t, "203.0.113.7", origin.IPAddress)
	})

	t.Run("first forwarded-for entry", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/waitlist", nil)
		req.Header.Set("X-Forwarded-For", " 198.51.100.1 , 10.0.0.1")

		origin := ExtractRequestOrigin(req)
		assert.Equal(t, "198.51.100.1", origin.IPAddress)
	})

	t.Run("no headers falls back to unknown", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/waitlist", nil)

		origin := ExtractRequestOrigin(req)
		assert.Equal(t, UnknownIP, origin.IPAddress)
	})

	t.Run("blank forwarded-for falls back to unknown", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/waitlist", nil)
		req.Header.Set("X-Forwarded-For", "   ")

		origin := ExtractRequestOrigin(req)
		assert.Equal(t, UnknownIP, origin.IPAddress)
	})
}

func TestExtractRequestOrigin_GeoHeaders(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/waitlist", nil)
	req.Header.Set("User-Agent", "curl/8.0")
	req.Header.Set("CF-IPCountry", "DE")
	req.Header.Set("CF-IPCity", "Berlin")
	req.Header.Set("CF-ASN", "13335")
	req.Header.Set("CF-Latitude", "52.52")
	req.Header.Set("CF-Bot-Score", "97")

	origin := ExtractRequestOrigin(req)

	require.NotNil(t, origin.UserAgent)
	assert.Equal(t, "curl/8.0", *origin.UserAgent)
	require.NotNil(t, origin.Country)
	assert.Equal(t, "DE", *origin.Country)
	require.NotNil(t, origin.City)
	assert.Equal(t, "Berlin", *origin.City)
	require.NotNil(t, origin.ASN)
	assert.Equal(t, 13335, *origin.ASN)
	require.NotNil(t, origin.Latitude)
	assert.InDelta(t, 52.52, *origin.Latitude, 0.0001)
	require.NotNil(t, origin.BotScore)
	assert.Equal(t, 97, *origin.BotScore)

	assert.Nil(t, origin.Region)
	assert.Nil(t, origin.Longitude)
	assert.Nil(t, origin.TLSVersion)
}

func TestExtractRequestOrigin_UnparsableNumericHeaders(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/waitlist", nil)
	req.Header.Set("CF-ASN", "not-a-number")
	req.Header.Set("CF-Longitude", "east")

	origin := ExtractRequestOrigin(req)

	assert.Nil(t, origin.ASN)
	assert.Nil(t, origin.Longitude)
}
