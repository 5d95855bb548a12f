package client

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

type HttpClientInterface interface {
	Get(url string, headers map[string]string) ([]byte, error)
	Post(url string, message []byte, headers map[string]string) ([]byte, error)
}

type HttpClient struct {
}

func (h *HttpClient) Get(url string, headers map[string]string) ([]byte, error) {
	return h.request("GET", url, nil, headers)
}

func (h *HttpClient) Post(url string, message []byte, headers map[string]string) ([]byte, error) {
	return h.request("POST", url, message, headers)
}

func (h *HttpClient) request(method string, url string, message []byte, headers map[string]string) ([]byte, error) {
	var body io.Reader
	if message != nil {
		body = bytes.NewReader(message)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	for name, value := range headers {
		req.Header.Set(name, value)
	}

	httpClient := &http.Client{
		Timeout: 20 * time.Second,
	}

	res, err := httpClient.Do(req)

	if err != nil {
		return nil, err
	}

	responseBody, err := io.ReadAll(res.Body)
	defer res.Body.Close()

	if err != nil {
		return nil, err
	}

	if res.StatusCode >= 400 {
		return nil, errors.New(fmt.Sprintf("Request [%s] failed with error code: %d", url, res.StatusCode))
	}

	return responseBody, nil
}
