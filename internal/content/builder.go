package content

import (
	"github.com/inkwell-blog/inkwell/internal/storage"
	"github.com/inkwell-blog/inkwell/pkg/types"
)

// actionKind tags the four operations a request can carry.
type actionKind int

const (
	actionNone actionKind = iota
	actionCreate
	actionRead
	actionUpdate
	actionDelete
)

// action is a tagged union: exactly one of payload or changes is meaningful,
// selected by kind.
type action struct {
	kind    actionKind
	payload types.NewPost
	changes types.UpdatePost
}

// RequestBuilder accumulates the facets of a repository request: a target
// kind, a publish-state filter, a row filter, and exactly one action. Zero or
// more configuration calls are followed by Build, which seals the request
// into an ExecutionPlan or refuses.
type RequestBuilder struct {
	targetKind *types.Kind
	publish    publishState
	filter     rowFilter
	action     action
}

// NewRequest returns a builder with the defaults: no kind, all publish
// states, all rows, no action.
func NewRequest() *RequestBuilder {
	return &RequestBuilder{
		publish: publishAll,
		filter:  rowFilter{kind: filterAll},
	}
}

// WithKind scopes the request to one content kind. Required for every action
// except Create, which infers the kind from its payload.
func (b *RequestBuilder) WithKind(kind types.Kind) *RequestBuilder {
	b.targetKind = &kind
	return b
}

// PublishedOnly restricts the request to rows with the published flag set.
func (b *RequestBuilder) PublishedOnly() *RequestBuilder {
	b.publish = publishedOnly
	return b
}

// ByID scopes the request to the row with the given external uid.
func (b *RequestBuilder) ByID(uid string) *RequestBuilder {
	b.filter = rowFilter{kind: filterByID, arg: uid}
	return b
}

// ByName scopes the request to rows whose title matches exactly.
func (b *RequestBuilder) ByName(title string) *RequestBuilder {
	b.filter = rowFilter{kind: filterByName, arg: title}
	return b
}

// ByTag scopes the request to rows associated with the given tag label.
func (b *RequestBuilder) ByTag(tag string) *RequestBuilder {
	b.filter = rowFilter{kind: filterByTag, arg: tag}
	return b
}

// Create sets the action to insert new content from payload.
func (b *RequestBuilder) Create(payload types.NewPost) *RequestBuilder {
	b.action = action{kind: actionCreate, payload: payload}
	return b
}

// Read sets the action to load the matching rows.
func (b *RequestBuilder) Read() *RequestBuilder {
	b.action = action{kind: actionRead}
	return b
}

// Update sets the action to apply a partial update to the matching rows.
func (b *RequestBuilder) Update(changes types.UpdatePost) *RequestBuilder {
	b.action = action{kind: actionUpdate, changes: changes}
	return b
}

// Delete sets the action to remove the matching rows.
func (b *RequestBuilder) Delete() *RequestBuilder {
	b.action = action{kind: actionDelete}
	return b
}

// Build validates the accumulated request and seals it into an ExecutionPlan
// bound to store. It fails with ErrIncompleteRequest when no action was set,
// or when a non-Create action has no target kind. A Create plan is built
// purely from its payload; the kind label is parsed here so an unknown label
// surfaces as types.ErrInvalidKind before anything touches the database.
func (b *RequestBuilder) Build(store *storage.Store) (*ExecutionPlan, error) {
	switch b.action.kind {
	case actionNone:
		return nil, ErrIncompleteRequest
	case actionCreate:
		kind, err := types.ParseKind(b.action.payload.Kind)
		if err != nil {
			return nil, err
		}
		return &ExecutionPlan{
			store:       store,
			action:      b.action,
			payloadKind: kind,
		}, nil
	default:
		if b.targetKind == nil {
			return nil, ErrIncompleteRequest
		}
		return &ExecutionPlan{
			store:  store,
			action: b.action,
			pred: conjoin(
				kindPredicate(*b.targetKind),
				b.filter.predicate(),
				b.publish.predicate(),
			),
		}, nil
	}
}
