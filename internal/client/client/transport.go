package client

import (
	"net/http"

	"github.com/dmitrijs2005/cateringplus/internal/common"
)

// Identity is the fixed client identification sent with every request.
type Identity struct {
	DeviceOS    string
	AppVersion  string
	BuildNumber string
	DeviceID    string
	Lang        string
}

// headerTransport stamps identification and auth headers on outgoing
// requests. The token is read per request so rotation applies to the next
// call.
type headerTransport struct {
	base     http.RoundTripper
	identity Identity
	tokens   TokenSource
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())

	r.Header.Set("deviceOs", t.identity.DeviceOS)
	r.Header.Set("applicationVersion", t.identity.AppVersion)
	r.Header.Set("buildNumber", t.identity.BuildNumber)
	r.Header.Set("deviceId", t.identity.DeviceID)
	r.Header.Set("lang", t.identity.Lang)
	r.Header.Set("Accept", "application/json")
	r.Header.Set("Content-Type", "application/json")

	r.Header.Del(common.AuthorizationHeaderName)
	if t.tokens != nil {
		if token := t.tokens.Token(); token != "" {
			r.Header.Set(common.AuthorizationHeaderName, common.AuthorizationScheme+" "+token)
		}
	}

	return t.base.RoundTrip(r)
}
