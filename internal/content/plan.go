package content

import (
	"context"
	"fmt"
	"strings"

	"github.com/inkwell-blog/inkwell/internal/storage"
	"github.com/inkwell-blog/inkwell/pkg/types"
)

// ExecutionPlan is a sealed, validated request bound to a store. It can only
// be obtained through RequestBuilder.Build.
type ExecutionPlan struct {
	store  *storage.Store
	action action

	// pred is the compiled WHERE conjunction; empty for Create plans.
	pred predicate
	// payloadKind is the parsed payload kind; only set for Create plans.
	payloadKind types.Kind
}

// Run executes the plan and returns the fully hydrated records it touched.
// Every action returns a list, even the single-row ones, so callers have one
// code path. A Read that matches nothing is an empty list, not an error.
func (p *ExecutionPlan) Run(ctx context.Context) ([]*types.Post, error) {
	switch p.action.kind {
	case actionCreate:
		return p.runCreate(ctx)
	case actionRead:
		return p.runRead(ctx)
	case actionUpdate:
		return p.runUpdate(ctx)
	case actionDelete:
		return p.runDelete(ctx)
	default:
		return nil, ErrIncompleteRequest
	}
}

// RunOne executes the plan and returns the single affected record, or
// ErrNotFound when the predicate matched nothing.
func (p *ExecutionPlan) RunOne(ctx context.Context) (*types.Post, error) {
	posts, err := p.Run(ctx)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, ErrNotFound
	}
	return posts[0], nil
}

// runCreate inserts the content row, upserts the tag vocabulary, and links
// the two — all in one transaction so a failure leaves nothing behind.
func (p *ExecutionPlan) runCreate(ctx context.Context) ([]*types.Post, error) {
	payload := p.action.payload

	uid, err := newUID(p.payloadKind, payload.Title)
	if err != nil {
		return nil, err
	}

	tx, err := p.store.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := nowUnix()
	row, err := scanContentRow(tx.QueryRowContext(ctx, `
		INSERT INTO contents (uid, kind, created_at, updated_at, title, body, summary, published)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+contentColumns,
		uid, string(p.payloadKind), now, now,
		payload.Title, payload.Body, payload.Summary, payload.Published,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to insert content: %w", err)
	}

	tags, err := upsertTags(ctx, tx, payload.Tags)
	if err != nil {
		return nil, err
	}
	if err := linkTags(ctx, tx, row.id, tags); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit create: %w", err)
	}

	labels := make([]string, len(tags))
	for i, t := range tags {
		labels[i] = t.label
	}
	return []*types.Post{row.merge(labels)}, nil
}

// runRead loads all matching rows newest first, then hydrates their tags in
// a single follow-up query.
func (p *ExecutionPlan) runRead(ctx context.Context) ([]*types.Post, error) {
	q := p.store.Querier()

	rows, err := q.QueryContext(ctx, `
		SELECT `+contentColumns+` FROM contents
		WHERE `+p.pred.expr+`
		ORDER BY created_at DESC`,
		p.pred.args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query contents: %w", err)
	}
	defer func() { _ = rows.Close() }()

	contents := make([]contentRow, 0)
	for rows.Next() {
		row, err := scanContentRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan content: %w", err)
		}
		contents = append(contents, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read contents: %w", err)
	}

	return hydrate(ctx, q, contents)
}

// runUpdate applies the changeset to every matching row. The repository owns
// the timestamps: updated_at is always stamped, and flipping published on
// also resets created_at so a republished draft surfaces at the top of
// time-ordered listings.
func (p *ExecutionPlan) runUpdate(ctx context.Context) ([]*types.Post, error) {
	changes := p.action.changes
	now := nowUnix()

	set := []string{"updated_at = ?"}
	args := []interface{}{now}
	if changes.Title != nil {
		set = append(set, "title = ?")
		args = append(args, *changes.Title)
	}
	if changes.Body != nil {
		set = append(set, "body = ?")
		args = append(args, *changes.Body)
	}
	if changes.Published != nil {
		set = append(set, "published = ?")
		args = append(args, *changes.Published)
		if *changes.Published {
			set = append(set, "created_at = ?")
			args = append(args, now)
		}
	}
	args = append(args, p.pred.args...)

	q := p.store.Querier()
	rows, err := q.QueryContext(ctx, `
		UPDATE contents SET `+strings.Join(set, ", ")+`
		WHERE `+p.pred.expr+`
		RETURNING `+contentColumns,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update contents: %w", err)
	}
	defer func() { _ = rows.Close() }()

	contents := make([]contentRow, 0)
	for rows.Next() {
		row, err := scanContentRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan updated content: %w", err)
		}
		contents = append(contents, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read updated contents: %w", err)
	}

	// Tag membership is not mutated by updates.
	return hydrate(ctx, q, contents)
}

// runDelete removes the matching rows and their tag associations in one
// transaction, returning the last known state of each deleted record. The
// rows are resolved up front because the tag filter's sub-query would stop
// matching once the association rows are gone. Tag rows themselves are a
// shared vocabulary and are never deleted.
func (p *ExecutionPlan) runDelete(ctx context.Context) ([]*types.Post, error) {
	tx, err := p.store.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	rows, err := tx.QueryContext(ctx, `
		SELECT `+contentColumns+` FROM contents
		WHERE `+p.pred.expr+`
		ORDER BY created_at DESC`,
		p.pred.args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query contents for delete: %w", err)
	}
	contents := make([]contentRow, 0)
	for rows.Next() {
		row, err := scanContentRow(rows)
		if err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("failed to scan content: %w", err)
		}
		contents = append(contents, row)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("failed to read contents: %w", err)
	}
	_ = rows.Close()

	posts, err := hydrate(ctx, tx, contents)
	if err != nil {
		return nil, err
	}

	if len(contents) > 0 {
		ids := make([]interface{}, len(contents))
		placeholders := make([]string, len(contents))
		for i, row := range contents {
			ids[i] = row.id
			placeholders[i] = "?"
		}
		in := strings.Join(placeholders, ",")

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM contents_tags WHERE content_id IN (`+in+`)`, ids...); err != nil {
			return nil, fmt.Errorf("failed to delete tag associations: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM contents WHERE id IN (`+in+`)`, ids...); err != nil {
			return nil, fmt.Errorf("failed to delete contents: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit delete: %w", err)
	}
	return posts, nil
}

// tagRow pairs a tag's surrogate id with its label.
type tagRow struct {
	id    int64
	label string
}

// upsertTags inserts any missing tag labels and returns the full tag rows
// for the requested labels. Inserting an existing label is a no-op, so the
// vocabulary never grows duplicates.
func upsertTags(ctx context.Context, q storage.Querier, labels []string) ([]tagRow, error) {
	if len(labels) == 0 {
		return nil, nil
	}

	for _, label := range labels {
		if _, err := q.ExecContext(ctx,
			`INSERT INTO tags (tag) VALUES (?) ON CONFLICT(tag) DO NOTHING`, label); err != nil {
			return nil, fmt.Errorf("failed to upsert tag %q: %w", label, err)
		}
	}

	// Re-select to pick up ids for both pre-existing and fresh rows.
	placeholders := make([]string, len(labels))
	args := make([]interface{}, len(labels))
	for i, label := range labels {
		placeholders[i] = "?"
		args[i] = label
	}
	rows, err := q.QueryContext(ctx,
		`SELECT id, tag FROM tags WHERE tag IN (`+strings.Join(placeholders, ",")+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select tags: %w", err)
	}
	defer func() { _ = rows.Close() }()

	tags := make([]tagRow, 0, len(labels))
	for rows.Next() {
		var t tagRow
		if err := rows.Scan(&t.id, &t.label); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// linkTags writes one association row per (content, tag) pair.
func linkTags(ctx context.Context, q storage.Querier, contentID int64, tags []tagRow) error {
	for _, t := range tags {
		if _, err := q.ExecContext(ctx,
			`INSERT INTO contents_tags (content_id, tag_id) VALUES (?, ?)`, contentID, t.id); err != nil {
			return fmt.Errorf("failed to link tag %q: %w", t.label, err)
		}
	}
	return nil
}

// hydrate merges each content row with its tag labels. All associations for
// the row set are loaded in one query and grouped by owning content id.
func hydrate(ctx context.Context, q storage.Querier, contents []contentRow) ([]*types.Post, error) {
	posts := make([]*types.Post, 0, len(contents))
	if len(contents) == 0 {
		return posts, nil
	}

	placeholders := make([]string, len(contents))
	args := make([]interface{}, len(contents))
	for i, row := range contents {
		placeholders[i] = "?"
		args[i] = row.id
	}

	rows, err := q.QueryContext(ctx, `
		SELECT contents_tags.content_id, tags.tag
		FROM contents_tags
		JOIN tags ON tags.id = contents_tags.tag_id
		WHERE contents_tags.content_id IN (`+strings.Join(placeholders, ",")+`)
		ORDER BY tags.tag`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load tags: %w", err)
	}
	defer func() { _ = rows.Close() }()

	byContent := make(map[int64][]string)
	for rows.Next() {
		var contentID int64
		var label string
		if err := rows.Scan(&contentID, &label); err != nil {
			return nil, fmt.Errorf("failed to scan tag association: %w", err)
		}
		byContent[contentID] = append(byContent[contentID], label)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tag associations: %w", err)
	}

	for _, row := range contents {
		posts = append(posts, row.merge(byContent[row.id]))
	}
	return posts, nil
}
