package types

// Kind discriminates the two content families. It is fixed at creation time
// and never changes for the lifetime of a row.
type Kind string

const (
	// KindPost is a dated blog entry.
	KindPost Kind = "post"
	// KindPage is a standalone page such as "about".
	KindPage Kind = "page"
)

// ParseKind maps a wire label to a Kind. Unknown labels return ErrInvalidKind.
func ParseKind(label string) (Kind, error) {
	switch Kind(label) {
	case KindPost:
		return KindPost, nil
	case KindPage:
		return KindPage, nil
	default:
		return "", ErrInvalidKind
	}
}

func (k Kind) String() string { return string(k) }

// Post is the external representation of a content row merged with its tags.
// Timestamps are Unix seconds.
type Post struct {
	UID       string   `json:"uid"`
	Kind      Kind     `json:"kind"`
	CreatedAt int64    `json:"created_at"`
	UpdatedAt int64    `json:"updated_at"`
	Title     string   `json:"title"`
	Body      string   `json:"body"`
	Tags      []string `json:"tags"`
	Summary   *string  `json:"summary"`
	Published bool     `json:"published"`
}

// PostMeta is Post without the body, for listing previews.
type PostMeta struct {
	UID       string   `json:"uid"`
	Kind      Kind     `json:"kind"`
	CreatedAt int64    `json:"created_at"`
	UpdatedAt int64    `json:"updated_at"`
	Title     string   `json:"title"`
	Tags      []string `json:"tags"`
	Summary   *string  `json:"summary"`
	Published bool     `json:"published"`
}

// Meta strips the body from a Post.
func (p *Post) Meta() PostMeta {
	return PostMeta{
		UID:       p.UID,
		Kind:      p.Kind,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		Title:     p.Title,
		Tags:      p.Tags,
		Summary:   p.Summary,
		Published: p.Published,
	}
}

// NewPost is the creation payload. Kind decides which listing endpoints will
// surface the row and how its uid is derived.
type NewPost struct {
	Title     string   `json:"title" validate:"required"`
	Kind      string   `json:"kind" validate:"required,oneof=post page"`
	Body      string   `json:"body" validate:"required"`
	Tags      []string `json:"tags"`
	Summary   *string  `json:"summary"`
	Published bool     `json:"published"`
}

// UpdatePost is a partial update. Nil fields are left untouched. Timestamps
// are never accepted from callers; the repository stamps them itself.
type UpdatePost struct {
	Title     *string `json:"title"`
	Body      *string `json:"body"`
	Published *bool   `json:"published"`
}
