package correlations_test

import (
	"context"
	"embed"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "github.com/viant/afs/embed"
	"github.com/viant/correlations"
	"github.com/viant/correlations/model"
	"github.com/viant/correlations/service/backend"
	"github.com/viant/correlations/service/backend/memory"
	"github.com/viant/correlations/service/registry"
)

//go:embed testdata/*
var embedFS embed.FS

func newEmbedded(t *testing.T, options ...correlations.Option) *correlations.Service {
	t.Helper()
	options = append([]correlations.Option{
		correlations.WithMetaFsOptions(&embedFS),
		correlations.WithMetaBaseURL("embed:///testdata"),
		correlations.WithConfig(&correlations.Config{
			Registry: correlations.RegistryConfig{URLs: []string{"datasources.yaml"}},
		}),
	}, options...)
	srv, err := correlations.New(context.Background(), options...)
	require.NoError(t, err)
	t.Cleanup(srv.Close)
	return srv
}

func TestService(t *testing.T) {
	srv := newEmbedded(t)
	ctx := context.Background()

	require.NoError(t, srv.Activate(ctx))
	assert.Equal(t, []*model.View{}, srv.State().Correlations)

	created, err := srv.Create(ctx, &model.NewCorrelation{SourceUID: "loki", TargetUID: "tempo", Label: "traces"})
	require.NoError(t, err)
	assert.Equal(t, "Loki", created.Source.Name)
	assert.Equal(t, "Tempo", created.Target.Name)
	assert.Equal(t, "public/app/plugins/datasource/loki/img/loki_icon.svg", created.Source.Meta.Info.Logos.Small)
	require.Len(t, srv.State().Correlations, 1)

	updated, err := srv.Update(ctx, (&model.UpdateCorrelation{SourceUID: "loki", UID: created.UID}).WithLabel("spans"))
	require.NoError(t, err)
	assert.Equal(t, "spans", updated.Label)
	assert.Equal(t, "spans", srv.State().Correlations[0].Label)

	require.NoError(t, srv.Remove(ctx, created.Ref()))
	assert.Empty(t, srv.State().Correlations)

	_, err = srv.Create(ctx, &model.NewCorrelation{SourceUID: "prom", TargetUID: "tempo"})
	assert.True(t, backend.IsForbidden(err))
}

func TestService_ReadOnly(t *testing.T) {
	srv := newEmbedded(t, correlations.WithReadOnly(true))
	ctx := context.Background()
	require.NoError(t, srv.Activate(ctx))
	assert.False(t, srv.CanWrite())

	_, err := srv.Create(ctx, &model.NewCorrelation{SourceUID: "loki", TargetUID: "tempo"})
	assert.ErrorIs(t, err, correlations.ErrReadOnly)
	_, err = srv.Update(ctx, &model.UpdateCorrelation{SourceUID: "loki", UID: "1"})
	assert.ErrorIs(t, err, correlations.ErrReadOnly)
	assert.ErrorIs(t, srv.Remove(ctx, model.Ref{SourceUID: "loki", UID: "1"}), correlations.ErrReadOnly)
}

func TestService_REST(t *testing.T) {
	resolver := registry.Static(
		&model.DataSource{UID: "loki", Name: "Loki", Type: "loki"},
		&model.DataSource{UID: "tempo", Name: "Tempo", Type: "tempo"},
	)
	server := httptest.NewServer(memory.New(memory.WithRegistry(resolver), memory.WithCorrelations(
		&model.Correlation{UID: "1", SourceUID: "loki", TargetUID: "tempo", Label: "traces"},
		&model.Correlation{UID: "2", SourceUID: "loki", TargetUID: "unknown"},
	)))
	defer server.Close()

	testCases := []struct {
		description string
		policy      string
		expectErr   bool
		expectUIDs  []string
	}{
		{description: "strict policy rejects unknown target", policy: "strict", expectErr: true},
		{description: "drop policy omits unknown target", policy: "drop", expectUIDs: []string{"1"}},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			config := correlations.DefaultConfig()
			config.Backend.URL = server.URL
			config.Resolution.Policy = testCase.policy
			config.Registry.DataSources = []*model.DataSource{
				{UID: "loki", Name: "Loki", Type: "loki"},
				{UID: "tempo", Name: "Tempo", Type: "tempo"},
			}
			srv, err := correlations.New(context.Background(), correlations.WithConfig(config))
			require.NoError(t, err)
			defer srv.Close()

			err = srv.Activate(context.Background())
			state := srv.State()
			if testCase.expectErr {
				assert.Error(t, err)
				assert.Error(t, state.Error)
				assert.Nil(t, state.Correlations)
				return
			}
			require.NoError(t, err)
			var uids []string
			for _, view := range state.Correlations {
				uids = append(uids, view.UID)
			}
			assert.Equal(t, testCase.expectUIDs, uids)
		})
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	config := correlations.DefaultConfig()
	config.Resolution.Policy = "ignore"
	_, err := correlations.New(context.Background(), correlations.WithConfig(config))
	assert.Error(t, err)

	_, err = correlations.New(context.Background(), correlations.WithConfig(&correlations.Config{
		Registry: correlations.RegistryConfig{URLs: []string{"mem://localhost/missing/datasources.yaml"}},
	}))
	assert.Error(t, err)
}
