package helpers

import (
	"net"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
)

// NewESClient builds a client for addrs. No addresses means search is not
// configured, reported as (nil, nil) so callers can run without it.
func NewESClient(addrs []string, username, password string) (*elasticsearch.Client, error) {
	if len(addrs) == 0 {
		return nil, nil
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 30 * time.Second}).DialContext
	transport.ResponseHeaderTimeout = 5 * time.Second
	transport.MaxIdleConnsPerHost = 10

	return elasticsearch.NewClient(elasticsearch.Config{
		Addresses:           addrs,
		Username:            username,
		Password:            password,
		Transport:           transport,
		MaxRetries:          2,
		RetryOnStatus:       []int{http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout},
		CompressRequestBody: true,
	})
}
