package requests

import (
	"crypto/tls"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/net/http/httpproxy"
	"golang.org/x/net/publicsuffix"
)

type Transport interface {
	doRequest(req *http.Request) (*http.Response, error)
}

// TcpTransport owns the http.Client, and with it the cookie jar that carries
// the controller session.
type TcpTransport struct {
	Client *http.Client
}

// NewInsecureTransport returns a transport that skips certificate
// verification and keeps cookies between requests. A zero timeout disables
// the client timeout.
func NewInsecureTransport(proxyAddress string, timeout time.Duration) (*TcpTransport, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create cookie jar")
	}

	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: true,
		},
	}

	if proxyAddress != "" {
		proxy, err := proxyFunc(proxyAddress, httpproxy.FromEnvironment())
		if err != nil {
			return nil, err
		}
		tr.Proxy = proxy
	}

	return &TcpTransport{
		Client: &http.Client{
			Transport: tr,
			Jar:       jar,
			Timeout:   timeout,
		},
	}, nil
}

// proxyFunc sends every request through proxyAddress, except the hosts
// matched by the NO_PROXY list of env.
func proxyFunc(proxyAddress string, env *httpproxy.Config) (func(*http.Request) (*url.URL, error), error) {
	if _, err := url.Parse(proxyAddress); err != nil {
		return nil, errors.Wrapf(err, "invalid proxy address %s", proxyAddress)
	}

	cfg := *env
	cfg.HTTPProxy = proxyAddress
	cfg.HTTPSProxy = proxyAddress
	proxy := cfg.ProxyFunc()

	return func(req *http.Request) (*url.URL, error) {
		return proxy(req.URL)
	}, nil
}

func (t *TcpTransport) doRequest(req *http.Request) (*http.Response, error) {
	return t.Client.Do(req)
}
