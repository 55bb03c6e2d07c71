// Package content is the repository at the heart of the storage service. It
// turns a small declarative request — which kind of content, which subset,
// which action — into a correctly scoped multi-table SQLite operation and
// returns uniform external records.
//
// A request is assembled with RequestBuilder and sealed into an
// ExecutionPlan:
//
//	posts, err := content.NewRequest().
//	    WithKind(types.KindPost).
//	    PublishedOnly().
//	    ByTag("go").
//	    Read().
//	    Build(store)
//	if err != nil { ... }
//	records, err := posts.Run(ctx)
//
// Build fails closed: no action, or a non-Create action without a target
// kind, yields ErrIncompleteRequest and no plan. The three filters (kind,
// row filter, publish state) compile to one AND-ed predicate; the "all"
// variants compile to a literal always-true clause so composition never
// branches.
//
// The executor keeps the cross-table invariants: creates and deletes run in
// one transaction so content and its tag associations appear and disappear
// together, tag labels are a shared vocabulary that is upserted but never
// removed, updated_at is stamped on every mutation, and publishing resets
// created_at so republished drafts float to the top of listings.
package content
