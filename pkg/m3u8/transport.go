package m3u8

import (
	"net/http"

	"golang.org/x/time/rate"
)

// HeaderMapTransport implements custom header injection
type HeaderMapTransport struct {
	Headers map[string]string
	Base    http.RoundTripper
}

func (t *HeaderMapTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if len(t.Headers) > 0 {
		req = req.Clone(req.Context())
		for k, v := range t.Headers {
			req.Header.Set(k, v)
		}
	}
	return baseTransport(t.Base).RoundTrip(req)
}

// RateLimitTransport delays each request until the limiter grants it.
type RateLimitTransport struct {
	Limiter *rate.Limiter
	Base    http.RoundTripper
}

func (t *RateLimitTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.Limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return baseTransport(t.Base).RoundTrip(req)
}

func baseTransport(rt http.RoundTripper) http.RoundTripper {
	if rt == nil {
		return http.DefaultTransport
	}
	return rt
}

// newClient builds the HTTP client described by opts.
func newClient(opts Options) *http.Client {
	var rt http.RoundTripper = http.DefaultTransport
	if opts.RequestsPerSecond > 0 {
		burst := int(opts.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		rt = &RateLimitTransport{
			Limiter: rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst),
			Base:    rt,
		}
	}
	if len(opts.Headers) > 0 {
		rt = &HeaderMapTransport{Headers: opts.Headers, Base: rt}
	}
	return &http.Client{Transport: rt, Timeout: opts.Timeout}
}
