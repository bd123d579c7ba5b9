package rest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/correlations/model"
	"github.com/viant/correlations/service/backend"
)

type recorded struct {
	method string
	path   string
	body   string
	header http.Header
}

func newTestServer(t *testing.T, status int, response string) (*httptest.Server, chan recorded) {
	t.Helper()
	requests := make(chan recorded, 10)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		requests <- recorded{method: r.Method, path: r.URL.EscapedPath(), body: string(body), header: r.Header.Clone()}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(server.Close)
	return server, requests
}

func TestClient_Requests(t *testing.T) {
	correlation := `{"uid":"1","sourceUID":"A","targetUID":"B","label":"x"}`
	testCases := []struct {
		description string
		call        func(ctx context.Context, c *Client) (interface{}, error)
		response    string
		method      string
		path        string
		body        string
		expect      interface{}
	}{
		{
			description: "list",
			response:    "[" + correlation + "]",
			call: func(ctx context.Context, c *Client) (interface{}, error) {
				var out []*model.Correlation
				err := c.Get(ctx, backend.CorrelationsPath, &out)
				return out, err
			},
			method: http.MethodGet,
			path:   "/api/datasources/correlations",
			expect: []*model.Correlation{{UID: "1", SourceUID: "A", TargetUID: "B", Label: "x"}},
		},
		{
			description: "create",
			response:    correlation,
			call: func(ctx context.Context, c *Client) (interface{}, error) {
				out := &model.Correlation{}
				input := &model.NewCorrelation{SourceUID: "A", TargetUID: "B", Label: "x"}
				err := c.Post(ctx, backend.SourceCorrelationsPath(input.SourceUID), input.Body(), out)
				return out, err
			},
			method: http.MethodPost,
			path:   "/api/datasources/uid/A/correlations",
			body:   `{"targetUID":"B","label":"x"}`,
			expect: &model.Correlation{UID: "1", SourceUID: "A", TargetUID: "B", Label: "x"},
		},
		{
			description: "update with escaped path",
			response:    correlation,
			call: func(ctx context.Context, c *Client) (interface{}, error) {
				out := &model.Correlation{}
				input := (&model.UpdateCorrelation{SourceUID: "a/b", UID: "1"}).WithLabel("x")
				err := c.Patch(ctx, backend.CorrelationPath(input.SourceUID, input.UID), input.Body(), out)
				return out, err
			},
			method: http.MethodPatch,
			path:   "/api/datasources/uid/a%2Fb/correlations/1",
			body:   `{"label":"x"}`,
			expect: &model.Correlation{UID: "1", SourceUID: "A", TargetUID: "B", Label: "x"},
		},
		{
			description: "delete",
			response:    `{"message":"Correlation deleted"}`,
			call: func(ctx context.Context, c *Client) (interface{}, error) {
				return nil, c.Delete(ctx, backend.CorrelationPath("A", "1"))
			},
			method: http.MethodDelete,
			path:   "/api/datasources/uid/A/correlations/1",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			server, requests := newTestServer(t, http.StatusOK, testCase.response)
			client, err := New(server.URL, WithBearerToken("secret"), WithOrgID("2"))
			require.NoError(t, err)

			actual, err := testCase.call(context.Background(), client)
			require.NoError(t, err)
			assert.Equal(t, testCase.expect, actual)

			require.Len(t, requests, 1)
			request := <-requests
			assert.Equal(t, testCase.method, request.method)
			assert.Equal(t, testCase.path, request.path)
			if testCase.body != "" {
				assert.JSONEq(t, testCase.body, request.body)
				assert.Equal(t, "application/json", request.header.Get("Content-Type"))
			} else {
				assert.Empty(t, request.body)
			}
			assert.Equal(t, "Bearer secret", request.header.Get("Authorization"))
			assert.Equal(t, "2", request.header.Get("X-Grafana-Org-Id"))
		})
	}
}

func TestClient_StatusError(t *testing.T) {
	server, _ := newTestServer(t, http.StatusForbidden, `{"message":"Data source is read only"}`)
	client, err := New(server.URL)
	require.NoError(t, err)

	err = client.Delete(context.Background(), backend.CorrelationPath("A", "1"))
	require.Error(t, err)
	var transportErr *backend.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, http.StatusForbidden, transportErr.StatusCode)
	assert.Equal(t, "Data source is read only", transportErr.Message)
	assert.True(t, backend.IsForbidden(err))
}

func TestClient_DecodeError(t *testing.T) {
	server, _ := newTestServer(t, http.StatusOK, `not json`)
	client, err := New(server.URL)
	require.NoError(t, err)

	var out []*model.Correlation
	err = client.Get(context.Background(), backend.CorrelationsPath, &out)
	var transportErr *backend.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Error(t, transportErr.Err)
}

func TestClient_NetworkError(t *testing.T) {
	server, _ := newTestServer(t, http.StatusOK, `[]`)
	client, err := New(server.URL, WithBasicAuth("admin", "admin"))
	require.NoError(t, err)
	server.Close()

	err = client.Get(context.Background(), backend.CorrelationsPath, nil)
	var transportErr *backend.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, 0, transportErr.StatusCode)
}

func TestClient_BasicAuth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, password, ok := r.BasicAuth()
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"ok": ok, "user": user, "password": password})
	}))
	defer server.Close()
	client, err := New(server.URL+"/", WithBasicAuth("admin", "pass"))
	require.NoError(t, err)

	out := map[string]interface{}{}
	require.NoError(t, client.Get(context.Background(), "/whoami", &out))
	assert.Equal(t, map[string]interface{}{"ok": true, "user": "admin", "password": "pass"}, out)
}

func TestNew_InvalidURL(t *testing.T) {
	for _, URL := range []string{"ftp://host", "http://", "::"} {
		_, err := New(URL)
		assert.Error(t, err, URL)
	}
}
