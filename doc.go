// Package correlations synchronises the client-side list of correlations,
// links between two data sources of an observability platform, with the
// remote REST collection that owns them.
//
// The root package exposes a Service façade wiring the sub-packages:
//
//   - runtime/store      – the list state, reload ordering and mutations
//   - service/backend    – REST client and in-memory implementation
//   - service/registry   – data-source descriptors used to resolve links
//   - service/projection – mapping raw correlations to views
//
// Typical use:
//
//	cfg, _ := correlations.LoadConfig(ctx, "config.yaml")
//	srv, _ := correlations.New(ctx, correlations.WithConfig(cfg))
//	defer srv.Close()
//	_ = srv.Activate(ctx)
//	for _, view := range srv.State().Correlations {
//		fmt.Println(view.Source.Name, "->", view.Target.Name, view.Label)
//	}
package correlations
