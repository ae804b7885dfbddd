package client

import (
	"net/http"
	"net/http/httputil"
	"os"

	"github.com/rs/zerolog/log"
)

// debugTransport dumps every vendor request and response at debug level.
//
// Enable it with WithDebugLogging(true), or without code changes by setting
// IAMPORTER_DEBUG=true or DEBUG=true. The dumps contain the bearer token, card
// numbers and buyer data, so keep it out of production and make sure the log
// sink is not shared.
//
//	export IAMPORTER_DEBUG=true
//	iamporter find imp_123456789012
type debugTransport struct{ base http.RoundTripper }

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := dt.base
	if base == nil {
		base = http.DefaultTransport
	}

	if reqDump, err := httputil.DumpRequestOut(req, true); err == nil {
		log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Str("request_dump", string(reqDump)).Msg("HTTP request")
	}

	resp, err := base.RoundTrip(req)
	if err != nil {
		log.Error().Err(err).Str("method", req.Method).Str("url", req.URL.String()).Msg("HTTP request failed")
		return nil, err
	}

	if respDump, err := httputil.DumpResponse(resp, true); err == nil {
		log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Int("status_code", resp.StatusCode).Str("response_dump", string(respDump)).Msg("HTTP response")
	}
	return resp, nil
}

// debugLoggingRequested reports whether IAMPORTER_DEBUG or DEBUG is "true".
func debugLoggingRequested() bool {
	return os.Getenv("IAMPORTER_DEBUG") == "true" || os.Getenv("DEBUG") == "true"
}
