package memstore

import (
	"strings"
)

// QueryDescriptor is the pool-protocol request shape: free-form statement
// text plus positional parameters substituted by catalogue pattern.
type QueryDescriptor struct {
	Text   string
	Values []any
}

// NormalizeQuery collapses whitespace and case-folds statement text so it can
// be matched against the catalogue.
func NormalizeQuery(text string) string {
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}

// Query compiles a textual descriptor against the catalogue and executes the
// resulting command. Text that matches no pattern fails with
// UnsupportedOperationError before any table is touched.
func (e *Engine) Query(text string, values ...any) (Result, error) {
	cmd, err := CompileQuery(QueryDescriptor{Text: text, Values: values})
	if err != nil {
		return Result{}, err
	}
	return e.Exec(cmd)
}

// CompileQuery maps a normalized statement onto a typed command. The
// catalogue is fixed; callers wanting operations outside it should construct
// commands directly.
func CompileQuery(q QueryDescriptor) (Command, error) {
	n := NormalizeQuery(q.Text)
	v := q.Values
	returning := strings.Contains(n, "returning")

	switch {
	case strings.HasPrefix(n, "set time zone"):
		return NoOp{}, nil

	// users
	case strings.HasPrefix(n, "insert into users"):
		return InsertUser{
			ID: stringAt(v, 0), Username: stringAt(v, 1),
			Password: stringAt(v, 2), FullName: stringAt(v, 3),
			Returning: returning,
		}, nil
	case strings.HasPrefix(n, "select * from users where id = $1"):
		return SelectUserByID{ID: stringAt(v, 0)}, nil
	case strings.HasPrefix(n, "select username from users where username = $1"):
		return SelectUserField{Field: "username", Username: stringAt(v, 0)}, nil
	case strings.HasPrefix(n, "select password from users where username = $1"):
		return SelectUserField{Field: "password", Username: stringAt(v, 0)}, nil
	case strings.HasPrefix(n, "select id from users where username = $1"):
		return SelectUserField{Field: "id", Username: stringAt(v, 0)}, nil
	case strings.HasPrefix(n, "delete from users"):
		return TruncateUsers{}, nil

	// threads
	case strings.HasPrefix(n, "insert into threads"):
		return InsertThread{
			ID: stringAt(v, 0), Title: stringAt(v, 1), Body: stringAt(v, 2),
			Owner: stringAt(v, 3), Date: valueAt(v, 4),
			Returning: returning,
		}, nil
	case strings.HasPrefix(n, "select * from threads where id = $1"):
		return SelectThreadByID{ID: stringAt(v, 0)}, nil
	case strings.HasPrefix(n, "select threads.id, threads.title, threads.body, threads.date, users.username from threads"):
		return SelectThreadDetail{ID: stringAt(v, 0)}, nil
	case strings.HasPrefix(n, "select id from threads where id = $1"):
		return ThreadExists{ID: stringAt(v, 0)}, nil
	case strings.HasPrefix(n, "delete from threads"):
		return TruncateThreads{}, nil

	// comments
	case strings.HasPrefix(n, "insert into comments"):
		return InsertComment{
			ID: stringAt(v, 0), Content: stringAt(v, 1), Date: valueAt(v, 2),
			ThreadID: stringAt(v, 3), UserID: stringAt(v, 4),
			Deleted:   boolAt(v, 5),
			Returning: returning,
		}, nil
	case strings.Contains(n, "from comments join users") && strings.Contains(n, "where comments.thread_id = $1"):
		return SelectCommentsByThread{ThreadID: stringAt(v, 0)}, nil
	case strings.HasPrefix(n, "select * from comments where id = $1"):
		return SelectCommentByID{ID: stringAt(v, 0)}, nil
	case strings.HasPrefix(n, "select is_deleted from comments where id = $1"):
		return SelectCommentField{Field: "is_deleted", ID: stringAt(v, 0)}, nil
	case strings.HasPrefix(n, "select 1 from comments where id = $1 and thread_id = $2"),
		strings.HasPrefix(n, "select id from comments where id = $1 and thread_id = $2"):
		return CommentInThread{ID: stringAt(v, 0), ThreadID: stringAt(v, 1)}, nil
	case strings.HasPrefix(n, "select id from comments where id = $1"):
		return SelectCommentField{Field: "id", ID: stringAt(v, 0)}, nil
	case strings.HasPrefix(n, "select user_id from comments where id = $1"):
		return SelectCommentField{Field: "user_id", ID: stringAt(v, 0)}, nil
	case strings.HasPrefix(n, "update comments set is_deleted = true where id = $1"):
		return SoftDeleteComment{ID: stringAt(v, 0)}, nil
	case strings.HasPrefix(n, "delete from comments"):
		return TruncateComments{}, nil

	// replies
	case strings.HasPrefix(n, "insert into replies"):
		return InsertReply{
			ID: stringAt(v, 0), Content: stringAt(v, 1), CommentID: stringAt(v, 2),
			UserID: stringAt(v, 3), Date: valueAt(v, 4),
			Deleted:   boolAt(v, 5),
			Returning: returning,
		}, nil
	case strings.HasPrefix(n, "select * from replies where id = $1"):
		return SelectReplyByID{ID: stringAt(v, 0)}, nil
	case strings.HasPrefix(n, "update replies set is_deleted = true where id = $1"):
		return SoftDeleteReply{ID: stringAt(v, 0)}, nil
	case strings.HasPrefix(n, "select id from replies where id = $1 and user_id = $2"):
		return ReplyOwnedBy{ID: stringAt(v, 0), UserID: stringAt(v, 1)}, nil
	case strings.HasPrefix(n, "select id from replies where id = $1"):
		return ReplyExists{ID: stringAt(v, 0)}, nil
	case strings.Contains(n, "from replies left join users") && strings.Contains(n, "comment_id = any($1"):
		return SelectRepliesByCommentIDs{CommentIDs: stringSliceAt(v, 0)}, nil
	case strings.Contains(n, "from replies join comments") && strings.Contains(n, "where comments.thread_id = $1"):
		return SelectRepliesByThread{ThreadID: stringAt(v, 0)}, nil
	case strings.HasPrefix(n, "delete from replies"):
		return TruncateReplies{}, nil

	// comment likes
	case strings.HasPrefix(n, "insert into comment_likes"):
		return InsertCommentLike{
			ID: stringAt(v, 0), CommentID: stringAt(v, 1), UserID: stringAt(v, 2),
		}, nil
	case strings.HasPrefix(n, "select 1 from comment_likes where comment_id = $1 and user_id = $2"),
		strings.HasPrefix(n, "select id from comment_likes where comment_id = $1 and user_id = $2"):
		return CommentLikeExists{CommentID: stringAt(v, 0), UserID: stringAt(v, 1)}, nil
	case strings.HasPrefix(n, "delete from comment_likes where comment_id = $1 and user_id = $2"):
		return DeleteCommentLike{CommentID: stringAt(v, 0), UserID: stringAt(v, 1)}, nil
	case strings.HasPrefix(n, "delete from comment_likes"):
		return TruncateCommentLikes{}, nil
	}

	return nil, &UnsupportedOperationError{Operation: n}
}

func valueAt(values []any, i int) any {
	if i < len(values) {
		return values[i]
	}
	return nil
}

func stringAt(values []any, i int) string {
	s, _ := valueAt(values, i).(string)
	return s
}

// boolAt reads an optional trailing boolean parameter. Absent or non-boolean
// values default to false.
func boolAt(values []any, i int) bool {
	b, _ := valueAt(values, i).(bool)
	return b
}

func stringSliceAt(values []any, i int) []string {
	switch s := valueAt(values, i).(type) {
	case []string:
		return s
	case []any:
		out := make([]string, 0, len(s))
		for _, item := range s {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}
		return out
	}
	return nil
}
