// Package types holds the wire shapes shared between the inkwell storage
// service and its clients (the authoring CLI, the web frontend).
//
// Post is the full external record; PostMeta is the same record without the
// body, used for listing previews:
//
//	post := types.Post{
//	    UID:       "XcN1qLk8vR2wbT0yZ4m3a",
//	    Kind:      types.KindPost,
//	    Title:     "Hello",
//	    Tags:      []string{"go"},
//	    Published: true,
//	}
//	meta := post.Meta()
//
// NewPost and UpdatePost are the inbound payloads. UpdatePost carries pointer
// fields so that absent and zero-valued fields can be told apart; a nil field
// is a no-op on the stored row.
package types
