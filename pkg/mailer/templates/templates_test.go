package templates

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-hrms/config"
)

func testConfig() *config.Config {
	return &config.Config{AppName: "hrms", CompanyName: "Acme HR", VerifyEmailURL: "https://hr.example/verify"}
}

func TestRender_VerificationCode(t *testing.T) {
	exp := time.Date(2024, 5, 2, 9, 30, 0, 0, time.UTC)
	data := NewVerificationCodeData(testConfig(), "Jane", "jane@mail.io", "042917", exp, WithIP("10.0.0.1"))

	subject, text, html, err := Render(VerificationCode, data)
	require.NoError(t, err)

	assert.Equal(t, "hrms: your verification code is 042917", subject)
	assert.Contains(t, text, "042917")
	assert.Contains(t, text, "02 May 2024, 09:30")
	assert.Contains(t, text, "https://hr.example/verify")
	assert.Contains(t, html, "042917")
	assert.Contains(t, html, "jane@mail.io")
}

func TestRenderHTML_UniversalLoginNotification(t *testing.T) {
	data := NewLoginNotificationData(testConfig(), "Jane", "jane@mail.io",
		WithIP("10.0.0.1"), WithUserAgent("curl/8"), WithLocation("Jakarta, Indonesia"),
		WithTime(time.Date(2024, 5, 2, 9, 30, 0, 0, time.UTC)))

	html, err := RenderHTML(Universal, data)
	require.NoError(t, err)
	assert.Contains(t, html, "New login to your account")
	assert.Contains(t, html, "Jakarta, Indonesia")
	assert.Contains(t, html, "curl/8")
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, _, _, err := Render("nope", map[string]any{})
	assert.Error(t, err)
}

func TestIPAPIResolver_Lookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/8.8.8.8", r.URL.Path)
		_, _ = w.Write([]byte(`{"status":"success","country":"Indonesia","regionName":"Jakarta","city":"Jakarta","timezone":"Asia/Jakarta"}`))
	}))
	defer srv.Close()

	g, err := IPAPIResolver{BaseURL: srv.URL + "/"}.Lookup(context.Background(), "8.8.8.8")
	require.NoError(t, err)
	assert.Equal(t, "Asia/Jakarta", g.Timezone)
	assert.Equal(t, "Jakarta, Jakarta, Indonesia", g.String())

	_, err = IPAPIResolver{BaseURL: srv.URL + "/"}.Lookup(context.Background(), " ")
	assert.Error(t, err)
}

type countingResolver struct {
	calls int
	err   error
}

func (r *countingResolver) Lookup(context.Context, string) (Geo, error) {
	r.calls++
	return Geo{City: "Bandung", Country: "Indonesia"}, r.err
}

func TestCachedResolver(t *testing.T) {
	next := &countingResolver{}
	c := NewCachedResolver(next, time.Minute)

	for range 3 {
		g, err := c.Lookup(context.Background(), "1.2.3.4")
		require.NoError(t, err)
		assert.Equal(t, "Bandung, Indonesia", g.String())
	}
	assert.Equal(t, 1, next.calls)

	next.err = assert.AnError
	_, err := c.Lookup(context.Background(), "5.6.7.8")
	assert.ErrorIs(t, err, assert.AnError)
	_, _ = c.Lookup(context.Background(), "5.6.7.8")
	assert.Equal(t, 3, next.calls)
}

func TestCachedResolver_DropsExpiredEntries(t *testing.T) {
	clock := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	next := &countingResolver{}
	c := NewCachedResolver(next, time.Minute)
	c.now = func() time.Time { return clock }

	_, err := c.Lookup(context.Background(), "1.1.1.1")
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())

	clock = clock.Add(2 * time.Minute)
	_, err = c.Lookup(context.Background(), "1.1.1.1")
	require.NoError(t, err)
	assert.Equal(t, 2, next.calls, "expired entry is looked up again")
	assert.Equal(t, 1, c.Len())
}

func TestCachedResolver_StaysWithinMaxEntries(t *testing.T) {
	clock := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	c := NewCachedResolver(&countingResolver{}, time.Minute)
	c.MaxEntries = 3
	c.now = func() time.Time { return clock }

	for i := range 3 {
		_, _ = c.Lookup(context.Background(), fmt.Sprintf("10.0.0.%d", i))
	}
	assert.Equal(t, 3, c.Len())

	// all three expire, so the sweep clears them before the insert
	clock = clock.Add(time.Hour)
	_, _ = c.Lookup(context.Background(), "10.0.1.1")
	assert.Equal(t, 1, c.Len())

	// live entries only: one is evicted to make room
	for i := range 5 {
		_, _ = c.Lookup(context.Background(), fmt.Sprintf("10.0.2.%d", i))
	}
	assert.Equal(t, 3, c.Len())
}

func TestOrDefault(t *testing.T) {
	assert.Equal(t, "x", orDefault("x", "  "))
	assert.Equal(t, "x", orDefault("x", nil))
	assert.Equal(t, "x", orDefault("x", 0))
	assert.Equal(t, "set", orDefault("x", "set"))
	assert.Equal(t, 7, orDefault("x", 7))
}
