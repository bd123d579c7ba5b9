package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/correlations/model"
	"github.com/viant/correlations/service/dao"
)

func TestRegistry(t *testing.T) {
	ctx := context.Background()
	r := New()
	require.NoError(t, r.Register(ctx,
		&model.DataSource{UID: "A", Name: "Loki", Type: "loki"},
		&model.DataSource{UID: "B", Name: "Tempo", Type: "tempo"},
		&model.DataSource{UID: "C", Name: "Loki EU", Type: "loki", ReadOnly: true},
	))

	ds, ok := r.Resolve("C")
	require.True(t, ok)
	assert.True(t, ds.ReadOnly)
	_, ok = r.Resolve("missing")
	assert.False(t, ok)

	lokis, err := r.List(ctx, dao.NewParameter("Type", "loki"))
	require.NoError(t, err)
	assert.Len(t, lokis, 2)

	require.NoError(t, r.Remove(ctx, "A"))
	_, ok = r.Resolve("A")
	assert.False(t, ok)
	assert.ErrorIs(t, r.Register(ctx, &model.DataSource{Name: "no uid"}), dao.ErrInvalidID)
}
