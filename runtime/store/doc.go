// Package store keeps the client-visible list of correlations in sync with
// the remote collection.
//
// A Store fetches the list once when activated and re-fetches the whole list
// after every successful create, update or delete instead of patching local
// state. Reloads are tagged with a monotonically increasing sequence number;
// a response older than the latest applied one is discarded, so the last
// issued reload always wins regardless of completion order.
//
//	s := store.New(client, resolver, store.WithLogger(logger))
//	defer s.Close()
//	_ = s.Activate(ctx)
//	view, err := s.Create(ctx, &model.NewCorrelation{SourceUID: "loki", TargetUID: "tempo", Label: "traces"})
//	state := s.State()
package store
