package models

// Raw row shapes handed to the thread-detail aggregation. They carry the
// heterogeneous field representations the fetch layer may produce: Date is
// either an already-textual timestamp or a time.Time, and LikeCount may be a
// number or a numeric string under the canonical like_count column.

// ThreadRow is a thread joined with its owner's username.
type ThreadRow struct {
	ID       string
	Title    string
	Body     string
	Date     any
	Username string
}

// CommentRow is a comment joined with its author's username and like count.
type CommentRow struct {
	ID        string
	Username  string
	Date      any
	Content   string
	IsDeleted bool
	LikeCount any
}

// ReplyRow is a reply joined with its author's username.
type ReplyRow struct {
	ID        string
	CommentID string
	Content   string
	Date      any
	IsDeleted bool
	Username  string
}

// ThreadDetail is the assembled read model for a single thread.
type ThreadDetail struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Body     string          `json:"body"`
	Date     string          `json:"date"`
	Username string          `json:"username"`
	Comments []CommentDetail `json:"comments"`
}

// CommentDetail is a comment node within a ThreadDetail.
type CommentDetail struct {
	ID        string        `json:"id"`
	Username  string        `json:"username"`
	Date      string        `json:"date"`
	Content   string        `json:"content"`
	IsDeleted bool          `json:"is_deleted"`
	LikeCount int           `json:"likeCount"`
	Replies   []ReplyDetail `json:"replies"`
}

// ReplyDetail is a reply node within a CommentDetail. The delete flag is
// consumed during assembly (content redaction) and intentionally not exposed.
type ReplyDetail struct {
	ID        string `json:"id"`
	CommentID string `json:"comment_id"`
	Username  string `json:"username"`
	Date      string `json:"date"`
	Content   string `json:"content"`
}
