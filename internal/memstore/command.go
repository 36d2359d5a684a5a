package memstore

// Command is the tagged-variant request type consumed by the Engine. One
// variant exists per supported statement; the repository layer constructs
// these directly, while CompileQuery produces them from textual descriptors.
type Command interface {
	isCommand()
}

// NoOp matches session statements (SET TIME ZONE ...) that the real pool
// accepts but that have no effect on the store.
type NoOp struct{}

// -- users

type InsertUser struct {
	ID        string
	Username  string
	Password  string
	FullName  string
	Returning bool
}

type SelectUserByID struct{ ID string }

// SelectUserField projects a single column (username, password, or id) for a
// user looked up by username.
type SelectUserField struct {
	Field    string
	Username string
}

type TruncateUsers struct{}

// -- threads

type InsertThread struct {
	ID        string
	Title     string
	Body      string
	Owner     string
	Date      any
	Returning bool
}

type SelectThreadByID struct{ ID string }

// SelectThreadDetail joins the thread with its owner's username.
type SelectThreadDetail struct{ ID string }

type ThreadExists struct{ ID string }

type TruncateThreads struct{}

// -- comments

type InsertComment struct {
	ID        string
	Content   string
	Date      any
	ThreadID  string
	UserID    string
	Deleted   bool
	Returning bool
}

// SelectCommentsByThread joins comments with author usernames and computed
// like counts, ordered ascending by date.
type SelectCommentsByThread struct{ ThreadID string }

type SelectCommentByID struct{ ID string }

// SelectCommentField projects a single column (is_deleted, id, or user_id)
// for a comment looked up by id.
type SelectCommentField struct {
	Field string
	ID    string
}

type CommentInThread struct {
	ID       string
	ThreadID string
}

type SoftDeleteComment struct{ ID string }

type TruncateComments struct{}

// -- replies

type InsertReply struct {
	ID        string
	Content   string
	CommentID string
	UserID    string
	Date      any
	Deleted   bool
	Returning bool
}

type SelectReplyByID struct{ ID string }

type SoftDeleteReply struct{ ID string }

type ReplyOwnedBy struct {
	ID     string
	UserID string
}

type ReplyExists struct{ ID string }

// SelectRepliesByCommentIDs joins replies with author usernames for a
// set of comment ids, ordered ascending by date.
type SelectRepliesByCommentIDs struct{ CommentIDs []string }

// SelectRepliesByThread joins replies through their comments to a thread,
// attaching author usernames, ordered ascending by date.
type SelectRepliesByThread struct{ ThreadID string }

type TruncateReplies struct{}

// -- comment likes

type InsertCommentLike struct {
	ID        string
	CommentID string
	UserID    string
}

type CommentLikeExists struct {
	CommentID string
	UserID    string
}

type DeleteCommentLike struct {
	CommentID string
	UserID    string
}

type TruncateCommentLikes struct{}

func (NoOp) isCommand()                      {}
func (InsertUser) isCommand()                {}
func (SelectUserByID) isCommand()            {}
func (SelectUserField) isCommand()           {}
func (TruncateUsers) isCommand()             {}
func (InsertThread) isCommand()              {}
func (SelectThreadByID) isCommand()          {}
func (SelectThreadDetail) isCommand()        {}
func (ThreadExists) isCommand()              {}
func (TruncateThreads) isCommand()           {}
func (InsertComment) isCommand()             {}
func (SelectCommentsByThread) isCommand()    {}
func (SelectCommentByID) isCommand()         {}
func (SelectCommentField) isCommand()        {}
func (CommentInThread) isCommand()           {}
func (SoftDeleteComment) isCommand()         {}
func (TruncateComments) isCommand()          {}
func (InsertReply) isCommand()               {}
func (SelectReplyByID) isCommand()           {}
func (SoftDeleteReply) isCommand()           {}
func (ReplyOwnedBy) isCommand()              {}
func (ReplyExists) isCommand()               {}
func (SelectRepliesByCommentIDs) isCommand() {}
func (SelectRepliesByThread) isCommand()     {}
func (TruncateReplies) isCommand()           {}
func (InsertCommentLike) isCommand()         {}
func (CommentLikeExists) isCommand()         {}
func (DeleteCommentLike) isCommand()         {}
func (TruncateCommentLikes) isCommand()      {}
