package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-blog/inkwell/internal/storage"
	"github.com/inkwell-blog/inkwell/pkg/types"
)

func testStore(t *testing.T) *storage.Store {
	store, err := storage.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestBuild_NoAction(t *testing.T) {
	store := testStore(t)

	_, err := NewRequest().WithKind(types.KindPost).Build(store)
	assert.ErrorIs(t, err, ErrIncompleteRequest)
}

func TestBuild_ReadWithoutKind(t *testing.T) {
	store := testStore(t)

	_, err := NewRequest().Read().Build(store)
	assert.ErrorIs(t, err, ErrIncompleteRequest)

	_, err = NewRequest().ByID("some-uid").Update(types.UpdatePost{}).Build(store)
	assert.ErrorIs(t, err, ErrIncompleteRequest)

	_, err = NewRequest().ByID("some-uid").Delete().Build(store)
	assert.ErrorIs(t, err, ErrIncompleteRequest)
}

func TestBuild_CreateIgnoresMissingKind(t *testing.T) {
	store := testStore(t)

	// Create derives everything from its payload; no WithKind required.
	plan, err := NewRequest().Create(types.NewPost{
		Title: "t", Kind: "post", Body: "b",
	}).Build(store)
	require.NoError(t, err)
	assert.NotNil(t, plan)
}

func TestBuild_CreateRejectsUnknownKind(t *testing.T) {
	store := testStore(t)

	_, err := NewRequest().Create(types.NewPost{
		Title: "t", Kind: "gallery", Body: "b",
	}).Build(store)
	assert.ErrorIs(t, err, types.ErrInvalidKind)
}

func TestBuild_ValidRequest(t *testing.T) {
	store := testStore(t)

	plan, err := NewRequest().
		WithKind(types.KindPage).
		PublishedOnly().
		ByTag("go").
		Read().
		Build(store)
	require.NoError(t, err)
	require.NotNil(t, plan)

	// Three predicates AND-ed together, the row filter as a sub-query.
	assert.Contains(t, plan.pred.expr, "contents.kind = ?")
	assert.Contains(t, plan.pred.expr, "contents.published = ?")
	assert.Contains(t, plan.pred.expr, "SELECT contents_tags.content_id")
}

func TestBuild_AllFiltersCompileToAlwaysTrue(t *testing.T) {
	store := testStore(t)

	plan, err := NewRequest().WithKind(types.KindPost).Read().Build(store)
	require.NoError(t, err)

	// Defaults still contribute clauses; composition is uniform.
	assert.Contains(t, plan.pred.expr, "1 = 1")
	assert.Len(t, plan.pred.args, 1) // only the kind argument
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"About", "about"},
		{"Hello World", "hello-world"},
		{"  Spaces   everywhere  ", "spaces-everywhere"},
		{"Mixed CASE & Punctuation!", "mixed-case-punctuation"},
		{"A", "a"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, slugify(tt.title), "slugify(%q)", tt.title)
	}
}

func TestNewUID_PostIsOpaque(t *testing.T) {
	uid1, err := newUID(types.KindPost, "Same Title")
	require.NoError(t, err)
	uid2, err := newUID(types.KindPost, "Same Title")
	require.NoError(t, err)

	assert.NotEqual(t, uid1, uid2)
	assert.NotEmpty(t, uid1)
}

func TestNewUID_PageIsDerivedFromTitle(t *testing.T) {
	uid, err := newUID(types.KindPage, "My Page")
	require.NoError(t, err)
	assert.Equal(t, "my-page", uid)
}
