package memory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/correlations/internal/idgen"
	"github.com/viant/correlations/model"
	"github.com/viant/correlations/service/backend"
	"github.com/viant/correlations/service/backend/rest"
	"github.com/viant/correlations/service/registry"
)

func testRegistry() registry.Resolver {
	return registry.Static(
		&model.DataSource{UID: "A", Name: "Loki", Type: "loki"},
		&model.DataSource{UID: "B", Name: "Tempo", Type: "tempo"},
		&model.DataSource{UID: "RO", Name: "Provisioned", Type: "loki", ReadOnly: true},
	)
}

func stubIDs(t *testing.T, ids ...string) {
	t.Helper()
	previous := idgen.NewFunc
	idgen.NewFunc = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}
	t.Cleanup(func() { idgen.NewFunc = previous })
}

func TestServer_Lifecycle(t *testing.T) {
	stubIDs(t, "1", "2")
	ctx := context.Background()
	srv := New(WithRegistry(testRegistry()))

	var list []*model.Correlation
	require.NoError(t, srv.Get(ctx, backend.CorrelationsPath, &list))
	assert.Equal(t, []*model.Correlation{}, list)

	created := &model.Correlation{}
	input := &model.NewCorrelation{SourceUID: "A", TargetUID: "B", Label: "x"}
	require.NoError(t, srv.Post(ctx, backend.SourceCorrelationsPath("A"), input.Body(), created))
	assert.Equal(t, &model.Correlation{UID: "1", SourceUID: "A", TargetUID: "B", Label: "x"}, created)

	require.NoError(t, srv.Post(ctx, backend.SourceCorrelationsPath("B"), (&model.NewCorrelation{TargetUID: "A"}).Body(), nil))

	updated := &model.Correlation{}
	update := (&model.UpdateCorrelation{SourceUID: "A", UID: "1"}).WithDescription("logs to traces")
	require.NoError(t, srv.Patch(ctx, backend.CorrelationPath("A", "1"), update.Body(), updated))
	assert.Equal(t, "x", updated.Label)
	assert.Equal(t, "logs to traces", updated.Description)

	require.NoError(t, srv.Get(ctx, backend.SourceCorrelationsPath("B"), &list))
	assert.Equal(t, []*model.Correlation{{UID: "2", SourceUID: "B", TargetUID: "A"}}, list)

	require.NoError(t, srv.Delete(ctx, backend.CorrelationPath("A", "1")))
	require.NoError(t, srv.Get(ctx, backend.CorrelationsPath, &list))
	assert.Len(t, list, 1)
	assert.Equal(t, "2", list[0].UID)
}

func TestServer_Errors(t *testing.T) {
	ctx := context.Background()
	srv := New(WithRegistry(testRegistry()), WithCorrelations(
		&model.Correlation{UID: "1", SourceUID: "A", TargetUID: "B"},
		&model.Correlation{UID: "9", SourceUID: "RO", TargetUID: "B"},
	))

	testCases := []struct {
		description string
		call        func() error
		status      int
	}{
		{description: "unknown source", status: http.StatusNotFound, call: func() error {
			return srv.Post(ctx, backend.SourceCorrelationsPath("X"), (&model.NewCorrelation{TargetUID: "B"}).Body(), nil)
		}},
		{description: "unknown target", status: http.StatusNotFound, call: func() error {
			return srv.Post(ctx, backend.SourceCorrelationsPath("A"), (&model.NewCorrelation{TargetUID: "X"}).Body(), nil)
		}},
		{description: "missing target", status: http.StatusBadRequest, call: func() error {
			return srv.Post(ctx, backend.SourceCorrelationsPath("A"), (&model.NewCorrelation{}).Body(), nil)
		}},
		{description: "read-only source delete", status: http.StatusForbidden, call: func() error {
			return srv.Delete(ctx, backend.CorrelationPath("RO", "9"))
		}},
		{description: "read-only source update", status: http.StatusForbidden, call: func() error {
			return srv.Patch(ctx, backend.CorrelationPath("RO", "9"), (&model.UpdateCorrelation{}).WithLabel("y").Body(), nil)
		}},
		{description: "correlation of another source", status: http.StatusNotFound, call: func() error {
			return srv.Delete(ctx, backend.CorrelationPath("B", "1"))
		}},
		{description: "missing correlation", status: http.StatusNotFound, call: func() error {
			return srv.Delete(ctx, backend.CorrelationPath("A", "404"))
		}},
		{description: "unknown route", status: http.StatusNotFound, call: func() error {
			return srv.Get(ctx, "/api/dashboards", nil)
		}},
		{description: "method not allowed", status: http.StatusMethodNotAllowed, call: func() error {
			return srv.Delete(ctx, backend.CorrelationsPath)
		}},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			err := testCase.call()
			require.Error(t, err)
			assert.Equal(t, testCase.status, backend.StatusCode(err))
		})
	}

	var list []*model.Correlation
	require.NoError(t, srv.Get(ctx, backend.CorrelationsPath, &list))
	assert.Len(t, list, 2)
}

func TestServer_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := New().Get(ctx, backend.CorrelationsPath, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestServer_HTTP(t *testing.T) {
	stubIDs(t, "7")
	server := httptest.NewServer(New(WithRegistry(testRegistry())))
	defer server.Close()
	client, err := rest.New(server.URL)
	require.NoError(t, err)
	ctx := context.Background()

	created := &model.Correlation{}
	require.NoError(t, client.Post(ctx, backend.SourceCorrelationsPath("A"), (&model.NewCorrelation{TargetUID: "B", Label: "x"}).Body(), created))
	assert.Equal(t, "7", created.UID)

	err = client.Delete(ctx, backend.CorrelationPath("RO", "7"))
	assert.True(t, backend.IsForbidden(err))
	assert.ErrorContains(t, err, "data source is read only")

	require.NoError(t, client.Delete(ctx, backend.CorrelationPath("A", "7")))
	var list []*model.Correlation
	require.NoError(t, client.Get(ctx, backend.CorrelationsPath, &list))
	assert.Empty(t, list)
}
