package requests

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
)

var (
	ErrUnknownContentType = errors.New("Unknown response content")
	ErrEmptyResponse      = errors.New("Empty response body")
)

// RestClient is an HttpClient that asks for JSON.
type RestClient struct {
	*HttpClient
}

func NewRestClient(httpClient *HttpClient) *RestClient {
	c := &RestClient{
		HttpClient: httpClient,
	}

	c.Header.Set("Accept", "application/json")

	return c
}

// ReadJsonResponseBody decodes a JSON body into v and closes it. Numbers
// decoded into interface values are kept as json.Number. An empty JSON body
// is ErrEmptyResponse.
func ReadJsonResponseBody(res *http.Response, v interface{}) error {
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	if IsResponseJson(res) {
		if len(bytes.TrimSpace(data)) == 0 {
			return ErrEmptyResponse
		}
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		return dec.Decode(v)
	}

	if res.StatusCode >= 400 {
		return errors.New(string(data))
	}

	return ErrUnknownContentType
}

func IsResponseJson(res *http.Response) bool {
	contentType := res.Header.Get("Content-Type")
	if strings.Contains(contentType, "application/json") {
		return true
	}
	return false
}
