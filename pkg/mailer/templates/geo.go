package templates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// Geo is where an IP address appears to be.
type Geo struct {
	City     string
	Region   string
	Country  string
	Timezone string
}

// String joins the non-empty parts, most specific first.
func (g Geo) String() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{g.City, g.Region, g.Country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

type GeoResolver interface {
	Lookup(ctx context.Context, ip string) (Geo, error)
}

var errEmptyIP = errors.New("geo: empty ip")

// IPAPIResolver queries ip-api.com. BaseURL points it elsewhere in tests.
type IPAPIResolver struct {
	Client  *http.Client
	BaseURL string
}

type ipAPIReply struct {
	Status     string `json:"status"`
	Message    string `json:"message"`
	Country    string `json:"country"`
	RegionName string `json:"regionName"`
	City       string `json:"city"`
	Timezone   string `json:"timezone"`
}

func (r IPAPIResolver) Lookup(ctx context.Context, ip string) (Geo, error) {
	if ip = strings.TrimSpace(ip); ip == "" {
		return Geo{}, errEmptyIP
	}
	base, client := r.BaseURL, r.Client
	if base == "" {
		base = "http://ip-api.com/json/"
	}
	if client == nil {
		client = &http.Client{Timeout: 2 * time.Second}
	}

	endpoint := base + url.PathEscape(ip) + "?" + url.Values{"fields": {"status,message,country,regionName,city,timezone"}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Geo{}, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return Geo{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Geo{}, fmt.Errorf("geo: ip-api answered %s", resp.Status)
	}

	var reply ipAPIReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return Geo{}, fmt.Errorf("geo: decode: %w", err)
	}
	if !strings.EqualFold(reply.Status, "success") {
		return Geo{}, fmt.Errorf("geo: lookup %s: %s", ip, reply.Message)
	}
	return Geo{City: reply.City, Region: reply.RegionName, Country: reply.Country, Timezone: reply.Timezone}, nil
}

// CachedResolver remembers successful lookups for TTL. Failures are not
// cached. Expired entries are dropped when read and swept once the map reaches
// MaxEntries; if every entry is still live, an arbitrary one makes room.
type CachedResolver struct {
	Next       GeoResolver
	TTL        time.Duration
	MaxEntries int

	mu      sync.Mutex
	entries map[string]cachedGeo
	now     func() time.Time
}

type cachedGeo struct {
	geo     Geo
	expires time.Time
}

const defaultGeoCacheSize = 4096

func NewCachedResolver(next GeoResolver, ttl time.Duration) *CachedResolver {
	return &CachedResolver{Next: next, TTL: ttl, MaxEntries: defaultGeoCacheSize, entries: map[string]cachedGeo{}, now: time.Now}
}

func (c *CachedResolver) Lookup(ctx context.Context, ip string) (Geo, error) {
	if g, ok := c.get(ip); ok {
		return g, nil
	}
	g, err := c.Next.Lookup(ctx, ip)
	if err != nil {
		return Geo{}, err
	}
	c.put(ip, g)
	return g, nil
}

func (c *CachedResolver) get(ip string) (Geo, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[ip]
	if !ok {
		return Geo{}, false
	}
	if !c.clock().Before(e.expires) {
		delete(c.entries, ip)
		return Geo{}, false
	}
	return e.geo, true
}

func (c *CachedResolver) put(ip string, g Geo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.clock()
	if c.entries == nil {
		c.entries = map[string]cachedGeo{}
	}
	if limit := c.MaxEntries; limit > 0 && len(c.entries) >= limit {
		for k, e := range c.entries {
			if !now.Before(e.expires) {
				delete(c.entries, k)
			}
		}
		for k := range c.entries {
			if len(c.entries) < limit {
				break
			}
			delete(c.entries, k)
		}
	}
	c.entries[ip] = cachedGeo{geo: g, expires: now.Add(c.TTL)}
}

func (c *CachedResolver) clock() time.Time {
	if c.now != nil {
		return c.now()
	}
	return time.Now()
}

// Len reports how many lookups are currently cached.
func (c *CachedResolver) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
