package cacheclient

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/SystemBuilders/Recency/internal/cacheservice"
)

var _ Client = (*SimpleClient)(nil)

// SimpleClient implements Client, the HTTP client for a Recency
// cache node.
type SimpleClient struct {
	baseURL string
	http    *http.Client
}

// NewSimpleClient returns a client that talks to the node described
// by the given configuration.
func NewSimpleClient(cfg cacheservice.Config) *SimpleClient {
	return &SimpleClient{
		baseURL: "http://" + cfg.IP() + ":" + cfg.Port(),
		http:    &http.Client{},
	}
}

// Put stores the value under the given key on the node.
func (sc *SimpleClient) Put(key, value string) error {
	_, err := sc.post("/put", cacheservice.PutRequest{Key: key, Value: value})
	return err
}

// Get retrieves the value stored under the given key, refreshing its
// recency on the node.
func (sc *SimpleClient) Get(key string) (string, error) {
	body, err := sc.post("/get", cacheservice.KeyRequest{Key: key})
	if err != nil {
		return "", err
	}

	var resp cacheservice.ValueResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", ErrUnexpectedReply
	}
	return resp.Value, nil
}

// Remove deletes the entry stored under the given key on the node.
func (sc *SimpleClient) Remove(key string) error {
	_, err := sc.post("/remove", cacheservice.KeyRequest{Key: key})
	return err
}

// Keys returns the node's resident keys in most to least recently
// used order.
func (sc *SimpleClient) Keys() ([]string, error) {
	body, err := sc.get("/keys")
	if err != nil {
		return nil, err
	}

	var resp cacheservice.KeysResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, ErrUnexpectedReply
	}
	return resp.Keys, nil
}

// Stats returns a snapshot of the node's cache counters.
func (sc *SimpleClient) Stats() (cacheservice.StatsResponse, error) {
	var resp cacheservice.StatsResponse

	body, err := sc.get("/stats")
	if err != nil {
		return resp, err
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return resp, ErrUnexpectedReply
	}
	return resp, nil
}

func (sc *SimpleClient) post(path string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	resp, err := sc.http.Post(sc.baseURL+path, "application/json", bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return readReply(resp)
}

func (sc *SimpleClient) get(path string) ([]byte, error) {
	resp, err := sc.http.Get(sc.baseURL + path)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return readReply(resp)
}

func readReply(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusNotFound:
		return nil, ErrKeyNotFound
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	default:
		return nil, ErrUnexpectedReply
	}
}
