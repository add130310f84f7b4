package selfupdate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func releaseServer(t *testing.T, tag string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/terappia/terapp/releases/latest" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"tag_name":"` + tag + `","html_url":"https://example.com/` + tag + `"}`))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name      string
		current   string
		latest    string
		available bool
	}{
		{"newer release", "v1.0.0", "v1.2.0", true},
		{"same release", "v1.2.0", "v1.2.0", false},
		{"ahead of release", "v1.3.0", "v1.2.0", false},
		{"missing prefix", "1.0.0", "1.0.1", true},
		{"prerelease is older", "v1.2.0-rc.1", "v1.2.0", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := releaseServer(t, tt.latest)
			got, err := NewChecker(WithBaseURL(server.URL)).Check(context.Background(), &CheckInput{Version: tt.current})
			require.NoError(t, err)
			assert.Equal(t, tt.available, got.UpdateAvailable)
			assert.Equal(t, canonical(tt.latest), got.LatestVersion)
		})
	}
}

func TestCheck_DevBuild(t *testing.T) {
	_, err := NewChecker().Check(context.Background(), &CheckInput{Version: "(devel)"})
	assert.ErrorIs(t, err, ErrDevBuild)
}

func TestCheck_BadVersions(t *testing.T) {
	_, err := NewChecker().Check(context.Background(), &CheckInput{Version: "banana"})
	assert.ErrorIs(t, err, ErrBadVersion)

	server := releaseServer(t, "nightly")
	_, err = NewChecker(WithBaseURL(server.URL)).Check(context.Background(), &CheckInput{Version: "v1.0.0"})
	assert.ErrorIs(t, err, ErrBadVersion)
}

func TestCheck_HTTPError(t *testing.T) {
	server := releaseServer(t, "v1.0.0")
	_, err := NewChecker(WithBaseURL(server.URL), WithRepository("someone", "else")).
		Check(context.Background(), &CheckInput{Version: "v1.0.0"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
}
