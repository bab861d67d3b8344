package requests

import (
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultUserAgent = "Branchcheck-Client/0_3"

type HttpClient struct {
	Header    http.Header
	Transport Transport
}

// NewHttpClient builds a client with its own cookie jar. Each controller
// session gets one.
func NewHttpClient(ua, proxyAddress string, timeout time.Duration) (*HttpClient, error) {
	t, err := NewInsecureTransport(proxyAddress, timeout)
	if err != nil {
		return nil, err
	}

	if ua == "" {
		ua = DefaultUserAgent
	}

	c := &HttpClient{
		Header:    make(http.Header),
		Transport: t,
	}
	c.Header.Set("User-Agent", ua)

	return c, nil
}

func (c *HttpClient) Get(url string) (*http.Response, error) {
	req, err := c.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}
	return c.Do(req)
}

func (c *HttpClient) Post(url string, bodyType string, body io.Reader) (*http.Response, error) {
	req, err := c.NewRequest("POST", url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", bodyType)
	return c.Do(req)
}

func (c *HttpClient) PostForm(url string, data url.Values) (*http.Response, error) {
	return c.Post(url, "application/x-www-form-urlencoded", strings.NewReader(data.Encode()))
}

func (c *HttpClient) NewRequest(method, urlStr string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequest(method, urlStr, body)
	if err != nil {
		return nil, err
	}
	for key, vals := range c.Header {
		for _, val := range vals {
			req.Header.Add(key, val)
		}
	}
	return req, err
}

func (c *HttpClient) Do(req *http.Request) (*http.Response, error) {
	return c.Transport.doRequest(req)
}
