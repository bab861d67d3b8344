package controller

import (
	"bytes"
	"fmt"
	"io"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/replicatedcom/branchcheck/log"
	"github.com/replicatedcom/branchcheck/requests"
)

const (
	DefaultPort = 443

	loginAction = "j_security_check"
	dataService = "dataservice"
)

// Endpoint is the controller address the session belongs to.
type Endpoint struct {
	Host string
	Port int
}

// ParseEndpoint accepts "host", "host:port", "[v6]:port" or an https URL.
// A port in addr wins over defaultPort.
func ParseEndpoint(addr string, defaultPort int) (Endpoint, error) {
	addr = strings.TrimSpace(addr)
	if strings.Contains(addr, "://") {
		u, err := url.Parse(addr)
		if err != nil {
			return Endpoint{}, errors.Wrapf(err, "invalid controller address %s", addr)
		}
		if u.Scheme != "https" {
			return Endpoint{}, errors.Errorf("controller address %s must use https", addr)
		}
		addr = u.Host
	}

	e := Endpoint{Host: addr, Port: defaultPort}
	if host, port, err := net.SplitHostPort(addr); err == nil {
		p, err := strconv.Atoi(port)
		if err != nil || p <= 0 || p > 65535 {
			return Endpoint{}, errors.Errorf("invalid port in controller address %s", addr)
		}
		e = Endpoint{Host: host, Port: p}
	}
	e.Host = strings.Trim(e.Host, "[]")

	if e.Host == "" {
		return Endpoint{}, errors.Errorf("empty controller address")
	}
	return e, nil
}

func (e Endpoint) BaseURL() string {
	port := e.Port
	if port == 0 {
		port = DefaultPort
	}
	return fmt.Sprintf("https://%s", net.JoinHostPort(e.Host, strconv.Itoa(port)))
}

func (e Endpoint) String() string {
	return e.BaseURL()
}

// Session is an authenticated handle on one controller. The cookie jar of
// its client holds the session cookie; it is never refreshed.
type Session struct {
	Endpoint Endpoint

	client *requests.RestClient
}

// Login posts the credentials to the controller's security check form. The
// client should not be shared with another controller.
func Login(client *requests.HttpClient, endpoint Endpoint, username, password string) (*Session, error) {
	uri := fmt.Sprintf("%s/%s", endpoint.BaseURL(), loginAction)
	log.Debugf("Logging in to %s as %s", uri, username)

	form := url.Values{}
	form.Set("j_username", username)
	form.Set("j_password", password)

	resp, err := client.PostForm(uri, form)
	if err != nil {
		err = errors.Wrapf(err, "failed to post login to %s", uri)
		log.Error(err)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		err = errors.Wrapf(err, "failed to read login response from %s", uri)
		log.Error(err)
		return nil, err
	}

	if isHTML(body) {
		log.Errorf("login to %s returned an html page; status=%d", uri, resp.StatusCode)
		return nil, ErrLoginFailed
	}

	return &Session{
		Endpoint: endpoint,
		client:   requests.NewRestClient(client),
	}, nil
}

func isHTML(body []byte) bool {
	return bytes.Contains(bytes.ToLower(body), []byte("<html"))
}

// Get fetches dataservice/{mountPoint} and decodes the JSON body into v.
// Every failure is a *QueryError.
func (s *Session) Get(mountPoint string, v interface{}) error {
	if s == nil || s.client == nil {
		return &QueryError{MountPoint: mountPoint, Err: ErrNotLoggedIn}
	}

	uri := fmt.Sprintf("%s/%s/%s", s.Endpoint.BaseURL(), dataService, strings.TrimPrefix(mountPoint, "/"))
	log.Debugf("GET %s", uri)

	resp, err := s.client.Get(uri)
	if err != nil {
		log.Error(err)
		return &QueryError{MountPoint: mountPoint, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		log.Errorf("status=%d; error=%s", resp.StatusCode, body)
		return &QueryError{
			MountPoint: mountPoint,
			Err: &StatusError{
				StatusCode:   resp.StatusCode,
				ContentType:  resp.Header.Get("Content-Type"),
				ResponseBody: body,
			},
		}
	}

	if err := requests.ReadJsonResponseBody(resp, v); err != nil {
		log.Errorf("failed to decode %s: %v", uri, err)
		return &QueryError{MountPoint: mountPoint, Err: err}
	}

	return nil
}
