package content

import (
	"database/sql"
	"time"

	"github.com/inkwell-blog/inkwell/pkg/types"
)

// contentColumns is the scan order shared by every statement that returns
// content rows.
const contentColumns = "id, uid, kind, created_at, updated_at, title, body, summary, published"

// contentRow is the internal shape of a contents row. The surrogate id never
// leaves this package.
type contentRow struct {
	id        int64
	uid       string
	kind      string
	createdAt int64
	updatedAt int64
	title     string
	body      string
	summary   sql.NullString
	published bool
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanContentRow(s scanner) (contentRow, error) {
	var row contentRow
	err := s.Scan(
		&row.id, &row.uid, &row.kind, &row.createdAt, &row.updatedAt,
		&row.title, &row.body, &row.summary, &row.published,
	)
	return row, err
}

// merge combines a content row with its tag labels into the external record.
// Rows without tags get an empty list, never nil, so the wire shape stays an
// array.
func (r contentRow) merge(tags []string) *types.Post {
	if tags == nil {
		tags = []string{}
	}
	post := &types.Post{
		UID:       r.uid,
		Kind:      types.Kind(r.kind),
		CreatedAt: r.createdAt,
		UpdatedAt: r.updatedAt,
		Title:     r.title,
		Body:      r.body,
		Tags:      tags,
		Published: r.published,
	}
	if r.summary.Valid {
		s := r.summary.String
		post.Summary = &s
	}
	return post
}

// nowUnix returns the current time in Unix seconds. Swappable in tests.
var nowUnix = func() int64 {
	return time.Now().Unix()
}
