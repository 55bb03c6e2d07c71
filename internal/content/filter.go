package content

import (
	"strings"

	"github.com/inkwell-blog/inkwell/pkg/types"
)

// predicate is one compiled WHERE fragment with its bind arguments.
type predicate struct {
	expr string
	args []interface{}
}

// alwaysTrue is what the All variants compile to. Keeping it a real clause
// means the executor always ANDs exactly three predicates and never has to
// special-case an absent filter.
var alwaysTrue = predicate{expr: "1 = 1"}

// conjoin ANDs predicates into a single WHERE fragment.
func conjoin(preds ...predicate) predicate {
	exprs := make([]string, 0, len(preds))
	var args []interface{}
	for _, p := range preds {
		exprs = append(exprs, p.expr)
		args = append(args, p.args...)
	}
	return predicate{
		expr: strings.Join(exprs, " AND "),
		args: args,
	}
}

// kindPredicate scopes a statement to one content kind.
func kindPredicate(kind types.Kind) predicate {
	return predicate{expr: "contents.kind = ?", args: []interface{}{string(kind)}}
}

// publishState filters rows by their published flag.
type publishState int

const (
	publishAll publishState = iota
	publishedOnly
)

func (s publishState) predicate() predicate {
	if s == publishedOnly {
		return predicate{expr: "contents.published = ?", args: []interface{}{true}}
	}
	return alwaysTrue
}

// rowFilter selects which rows an action touches.
type filterKind int

const (
	filterAll filterKind = iota
	filterByID
	filterByName
	filterByTag
)

type rowFilter struct {
	kind filterKind
	arg  string
}

// predicate compiles the filter to SQL. The tag variant is a membership
// sub-query through the association table rather than a join, so a content
// row can never be duplicated in the result.
func (f rowFilter) predicate() predicate {
	switch f.kind {
	case filterByID:
		return predicate{expr: "contents.uid = ?", args: []interface{}{f.arg}}
	case filterByName:
		return predicate{expr: "contents.title = ?", args: []interface{}{f.arg}}
	case filterByTag:
		return predicate{
			expr: `contents.id IN (
				SELECT contents_tags.content_id FROM contents_tags
				JOIN tags ON tags.id = contents_tags.tag_id
				WHERE tags.tag = ?)`,
			args: []interface{}{f.arg},
		}
	default:
		return alwaysTrue
	}
}
