package post

// Field length bounds, enforced at validation and mirrored by the schema.
const (
	MaxTitleLength = 50
	MaxBodyLength  = 1000
)

// Post is an owned resource. User carries the owner's username on the wire,
// never the internal ID. Ownership is immutable after creation and there is no
// update operation.
type Post struct {
	ID    int64  `json:"id"`
	User  string `json:"user"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// CreatePostRequest represents the post creation body. The owner is always the
// caller; it cannot be supplied here.
type CreatePostRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}
