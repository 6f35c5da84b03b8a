package elastic

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func testServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// the official client refuses to talk to servers without this header
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		handler(w, r)
	}))
}

func testClient(t *testing.T, url string) *Client {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	client, err := New(&Config{URL: url}, logger)
	assert.Nil(t, err)

	return client
}

func TestClient_ListIndices(t *testing.T) {
	var requestPath, requestQuery string

	srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		requestPath = r.URL.Path
		requestQuery = r.URL.RawQuery

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"index":"zis-audit-2020-01"},{"index":"zis-audit-2021-02"}]`))
	})
	defer srv.Close()

	client := testClient(t, srv.URL)

	names, err := client.ListIndices(context.Background(), "zis-audit-")

	assert.Nil(t, err)
	assert.Equal(t, []string{"zis-audit-2020-01", "zis-audit-2021-02"}, names)

	assert.True(t, strings.HasPrefix(requestPath, "/_cat/indices/"), "unexpected path %q", requestPath)
	assert.Contains(t, requestPath, "zis-audit-")
	assert.Contains(t, requestQuery, "format=json")
	assert.Contains(t, requestQuery, "h=index")
}

func TestClient_ListIndicesEmpty(t *testing.T) {
	srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	})
	defer srv.Close()

	client := testClient(t, srv.URL)

	names, err := client.ListIndices(context.Background(), "zis-audit-")

	assert.Nil(t, err)
	assert.Empty(t, names)
}

func TestClient_ListIndicesAuthFailure(t *testing.T) {
	srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	defer srv.Close()

	client := testClient(t, srv.URL)

	_, err := client.ListIndices(context.Background(), "zis-audit-")

	assert.NotNil(t, err)
	assert.True(t, IsAuth(err))
	assert.False(t, IsConnection(err))
}

func TestClient_ListIndicesProtocolFailure(t *testing.T) {
	srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte(`this is not json`))
	})
	defer srv.Close()

	client := testClient(t, srv.URL)

	_, err := client.ListIndices(context.Background(), "zis-audit-")

	assert.NotNil(t, err)
	assert.True(t, IsProtocol(err))
}

func TestClient_ListIndicesConnectionFailure(t *testing.T) {
	srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close() // nothing is listening anymore

	client := testClient(t, srv.URL)

	_, err := client.ListIndices(context.Background(), "zis-audit-")

	assert.NotNil(t, err)
	assert.True(t, IsConnection(err))
}

func TestClient_DeleteIndex(t *testing.T) {
	var requestMethod, requestPath string

	srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		requestMethod = r.Method
		requestPath = r.URL.Path

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"acknowledged":true}`))
	})
	defer srv.Close()

	client := testClient(t, srv.URL)

	err := client.DeleteIndex(context.Background(), "zis-audit-2020-01")

	assert.Nil(t, err)
	assert.Equal(t, http.MethodDelete, requestMethod)
	assert.Equal(t, "/zis-audit-2020-01", requestPath)
}

func TestClient_DeleteIndexNotFound(t *testing.T) {
	srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"type":"index_not_found_exception"}}`))
	})
	defer srv.Close()

	client := testClient(t, srv.URL)

	err := client.DeleteIndex(context.Background(), "zis-audit-2020-01")

	assert.NotNil(t, err)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsProtocol(err))
}

func TestClient_DeleteIndexAuthFailure(t *testing.T) {
	srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	defer srv.Close()

	client := testClient(t, srv.URL)

	err := client.DeleteIndex(context.Background(), "zis-audit-2020-01")

	assert.NotNil(t, err)
	assert.True(t, IsAuth(err))
}

func TestClient_BasicAuthHeaderIsSent(t *testing.T) {
	var user, pass string
	var ok bool

	srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok = r.BasicAuth()

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	})
	defer srv.Close()

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	client, err := New(&Config{URL: srv.URL, Username: "admin", Password: "secret"}, logger)
	assert.Nil(t, err)

	_, err = client.ListIndices(context.Background(), "zis-audit-")

	assert.Nil(t, err)
	assert.True(t, ok)
	assert.Equal(t, "admin", user)
	assert.Equal(t, "secret", pass)
}

func TestClient_Ping(t *testing.T) {
	srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {})
	defer srv.Close()

	client := testClient(t, srv.URL)
	assert.Nil(t, client.Ping(context.Background()))
}
