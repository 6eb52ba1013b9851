package waitlist

import (
	"net/http"
	"strconv"
	"strings"
)

// UnknownIP is the shared bucket for clients that arrive without any
// client-IP header. All such clients count against one rate-limit key.
const UnknownIP = "unknown"

// RequestOrigin is the per-request metadata snapshot stored alongside an
// entry. The geo and network fields are read from the Cf-* headers the edge
// proxy injects; every one of them is optional and stored as reported,
// never validated.
type RequestOrigin struct {
	IPAddress      string
	UserAgent      *string
	AcceptLanguage *string
	Country        *string
	Region         *string
	RegionCode     *string
	City           *string
	PostalCode     *string
	Continent      *string
	Timezone       *string
	Colo           *string
	ASN            *int
	ASOrganization *string
	Latitude       *float64
	Longitude      *float64
	BotScore       *int
	TLSVersion     *string
	HTTPProtocol   *string
}

// ExtractRequestOrigin captures the request-origin snapshot from the edge
// header chain. Missing headers degrade to nil, unparsable numeric headers
// too.
func ExtractRequestOrigin(r *http.Request) RequestOrigin {
	h := r.Header

	return RequestOrigin{
		IPAddress:      clientIP(h),
		UserAgent:      headerValue(h, "User-Agent"),
		AcceptLanguage: headerValue(h, "Accept-Language"),
		Country:        headerValue(h, "CF-IPCountry"),
		Region:         headerValue(h, "CF-Region"),
		RegionCode:     headerValue(h, "CF-Region-Code"),
		City:           headerValue(h, "CF-IPCity"),
		PostalCode:     headerValue(h, "CF-Postal-Code"),
		Continent:      headerValue(h, "CF-IPContinent"),
		Timezone:       headerValue(h, "CF-Timezone"),
		Colo:           headerValue(h, "CF-Colo"),
		ASN:            intHeader(h, "CF-ASN"),
		ASOrganization: headerValue(h, "CF-AS-Organization"),
		Latitude:       floatHeader(h, "CF-Latitude"),
		Longitude:      floatHeader(h, "CF-Longitude"),
		BotScore:       intHeader(h, "CF-Bot-Score"),
		TLSVersion:     headerValue(h, "CF-TLS-Version"),
		HTTPProtocol:   headerValue(h, "CF-HTTP-Protocol"),
	}
}

// clientIP resolves the requester's address: connecting-IP header first, then
// the first entry of the forwarded-for chain, then the shared unknown bucket.
func clientIP(h http.Header) string {
	if ip := strings.TrimSpace(h.Get("CF-Connecting-IP")); ip != "" {
		return ip
	}

	if forwarded := h.Get("X-Forwarded-For"); forwarded != "" {
		if first := strings.TrimSpace(strings.SplitN(forwarded, ",", 2)[0]); first != "" {
			return first
		}
	}

	return UnknownIP
}

func headerValue(h http.Header, name string) *string {
	v := strings.TrimSpace(h.Get(name))
	if v == "" {
		return nil
	}
	return &v
}

func intHeader(h http.Header, name string) *int {
	raw := headerValue(h, name)
	if raw == nil {
		return nil
	}

	n, err := strconv.Atoi(*raw)
	if err != nil {
		return nil
	}
	return &n
}

func floatHeader(h http.Header, name string) *float64 {
	raw := headerValue(h, name)
	if raw == nil {
		return nil
	}

	f, err := strconv.ParseFloat(*raw, 64)
	if err != nil {
		return nil
	}
	return &f
}
