package memstore

import (
	"fmt"
	"sort"
	"time"
)

// Result mirrors the shape the relational pool returns: the projected rows
// and the number of rows the statement touched.
type Result struct {
	Rows     []Row
	RowCount int
}

// UnsupportedOperationError reports a command or query text outside the
// supported catalogue. It signals a programming error: the caller must not
// retry, and no table has been mutated.
type UnsupportedOperationError struct {
	Operation string
}

func (e *UnsupportedOperationError) Error() string {
	return "unsupported in-memory query: " + e.Operation
}

// Engine executes commands against a TableStore.
type Engine struct {
	store *TableStore
}

// NewEngine returns an Engine bound to the given store.
func NewEngine(store *TableStore) *Engine {
	return &Engine{store: store}
}

// Store exposes the underlying TableStore, mainly for test teardown.
func (e *Engine) Store() *TableStore {
	return e.store
}

// Exec dispatches a single command. Each call is one atomic step against the
// current store state; there is no transaction concept.
func (e *Engine) Exec(cmd Command) (Result, error) {
	switch c := cmd.(type) {
	case NoOp:
		return Result{}, nil

	case InsertUser:
		e.store.Insert(TableUsers, Row{
			"id": c.ID, "username": c.Username, "password": c.Password, "fullname": c.FullName,
		})
		res := Result{RowCount: 1}
		if c.Returning {
			res.Rows = []Row{{"id": c.ID, "username": c.Username, "fullname": c.FullName}}
		}
		return res, nil

	case SelectUserByID:
		rows := e.store.Scan(TableUsers, fieldEquals("id", c.ID))
		return Result{Rows: rows, RowCount: len(rows)}, nil

	case SelectUserField:
		if c.Field != "username" && c.Field != "password" && c.Field != "id" {
			return Result{}, &UnsupportedOperationError{Operation: fmt.Sprintf("select %s from users", c.Field)}
		}
		rows := e.store.Scan(TableUsers, fieldEquals("username", c.Username))
		return Result{Rows: project(rows, c.Field), RowCount: len(rows)}, nil

	case TruncateUsers:
		return Result{RowCount: e.store.Truncate(TableUsers)}, nil

	case InsertThread:
		e.store.Insert(TableThreads, Row{
			"id": c.ID, "title": c.Title, "body": c.Body, "owner": c.Owner, "date": c.Date,
		})
		res := Result{RowCount: 1}
		if c.Returning {
			res.Rows = []Row{{"id": c.ID, "title": c.Title, "owner": c.Owner}}
		}
		return res, nil

	case SelectThreadByID:
		rows := e.store.Scan(TableThreads, fieldEquals("id", c.ID))
		return Result{Rows: rows, RowCount: len(rows)}, nil

	case SelectThreadDetail:
		threads := e.store.Scan(TableThreads, fieldEquals("id", c.ID))
		if len(threads) == 0 {
			return Result{}, nil
		}
		thread := threads[0]
		row := Row{
			"id":       thread["id"],
			"title":    thread["title"],
			"body":     thread["body"],
			"date":     thread["date"],
			"username": e.usernameOf(thread["owner"]),
		}
		return Result{Rows: []Row{row}, RowCount: 1}, nil

	case ThreadExists:
		rows := e.store.Scan(TableThreads, fieldEquals("id", c.ID))
		return Result{Rows: project(rows, "id"), RowCount: len(rows)}, nil

	case TruncateThreads:
		return Result{RowCount: e.store.Truncate(TableThreads)}, nil

	case InsertComment:
		e.store.Insert(TableComments, Row{
			"id": c.ID, "content": c.Content, "date": c.Date,
			"thread_id": c.ThreadID, "user_id": c.UserID, "is_deleted": c.Deleted,
		})
		res := Result{RowCount: 1}
		if c.Returning {
			res.Rows = []Row{{"id": c.ID, "content": c.Content, "owner": c.UserID}}
		}
		return res, nil

	case SelectCommentsByThread:
		comments := e.store.Scan(TableComments, fieldEquals("thread_id", c.ThreadID))
		rows := make([]Row, 0, len(comments))
		for _, comment := range comments {
			rows = append(rows, Row{
				"id":         comment["id"],
				"username":   e.usernameOf(comment["user_id"]),
				"date":       comment["date"],
				"content":    comment["content"],
				"is_deleted": comment["is_deleted"] == true,
				"like_count": e.likeCountOf(comment["id"]),
			})
		}
		sortByDateAsc(rows)
		return Result{Rows: rows, RowCount: len(rows)}, nil

	case SelectCommentByID:
		rows := e.store.Scan(TableComments, fieldEquals("id", c.ID))
		return Result{Rows: rows, RowCount: len(rows)}, nil

	case SelectCommentField:
		if c.Field != "is_deleted" && c.Field != "id" && c.Field != "user_id" {
			return Result{}, &UnsupportedOperationError{Operation: fmt.Sprintf("select %s from comments", c.Field)}
		}
		rows := e.store.Scan(TableComments, fieldEquals("id", c.ID))
		return Result{Rows: project(rows, c.Field), RowCount: len(rows)}, nil

	case CommentInThread:
		rows := e.store.Scan(TableComments, func(r Row) bool {
			return r["id"] == c.ID && r["thread_id"] == c.ThreadID
		})
		return Result{Rows: project(rows, "id"), RowCount: len(rows)}, nil

	case SoftDeleteComment:
		count := e.store.UpdateFirst(TableComments, fieldEquals("id", c.ID), func(r Row) {
			r["is_deleted"] = true
		})
		return Result{RowCount: count}, nil

	case TruncateComments:
		return Result{RowCount: e.store.Truncate(TableComments)}, nil

	case InsertReply:
		e.store.Insert(TableReplies, Row{
			"id": c.ID, "content": c.Content, "comment_id": c.CommentID,
			"user_id": c.UserID, "date": c.Date, "is_deleted": c.Deleted,
		})
		res := Result{RowCount: 1}
		if c.Returning {
			res.Rows = []Row{{"id": c.ID, "content": c.Content, "owner": c.UserID}}
		}
		return res, nil

	case SelectReplyByID:
		rows := e.store.Scan(TableReplies, fieldEquals("id", c.ID))
		return Result{Rows: rows, RowCount: len(rows)}, nil

	case SoftDeleteReply:
		count := e.store.UpdateFirst(TableReplies, fieldEquals("id", c.ID), func(r Row) {
			r["is_deleted"] = true
		})
		return Result{RowCount: count}, nil

	case ReplyOwnedBy:
		rows := e.store.Scan(TableReplies, func(r Row) bool {
			return r["id"] == c.ID && r["user_id"] == c.UserID
		})
		return Result{Rows: project(rows, "id"), RowCount: len(rows)}, nil

	case ReplyExists:
		rows := e.store.Scan(TableReplies, fieldEquals("id", c.ID))
		return Result{Rows: project(rows, "id"), RowCount: len(rows)}, nil

	case SelectRepliesByCommentIDs:
		members := make(map[string]bool, len(c.CommentIDs))
		for _, id := range c.CommentIDs {
			members[id] = true
		}
		replies := e.store.Scan(TableReplies, func(r Row) bool {
			id, _ := r["comment_id"].(string)
			return members[id]
		})
		rows := make([]Row, 0, len(replies))
		for _, reply := range replies {
			rows = append(rows, e.replyJoinRow(reply))
		}
		sortByDateAsc(rows)
		return Result{Rows: rows, RowCount: len(rows)}, nil

	case SelectRepliesByThread:
		commentIDs := make(map[any]bool)
		for _, comment := range e.store.Scan(TableComments, fieldEquals("thread_id", c.ThreadID)) {
			commentIDs[comment["id"]] = true
		}
		replies := e.store.Scan(TableReplies, func(r Row) bool {
			return commentIDs[r["comment_id"]]
		})
		rows := make([]Row, 0, len(replies))
		for _, reply := range replies {
			rows = append(rows, e.replyJoinRow(reply))
		}
		sortByDateAsc(rows)
		return Result{Rows: rows, RowCount: len(rows)}, nil

	case TruncateReplies:
		return Result{RowCount: e.store.Truncate(TableReplies)}, nil

	case InsertCommentLike:
		e.store.Insert(TableCommentLikes, Row{
			"id": c.ID, "comment_id": c.CommentID, "user_id": c.UserID,
		})
		return Result{RowCount: 1}, nil

	case CommentLikeExists:
		rows := e.store.Scan(TableCommentLikes, func(r Row) bool {
			return r["comment_id"] == c.CommentID && r["user_id"] == c.UserID
		})
		return Result{Rows: project(rows, "id"), RowCount: len(rows)}, nil

	case DeleteCommentLike:
		count := e.store.DeleteWhere(TableCommentLikes, func(r Row) bool {
			return r["comment_id"] == c.CommentID && r["user_id"] == c.UserID
		})
		return Result{RowCount: count}, nil

	case TruncateCommentLikes:
		return Result{RowCount: e.store.Truncate(TableCommentLikes)}, nil

	default:
		return Result{}, &UnsupportedOperationError{Operation: fmt.Sprintf("%T", cmd)}
	}
}

// TruncateAll clears every table. Test teardown helper.
func (e *Engine) TruncateAll() {
	for _, table := range []string{TableUsers, TableThreads, TableComments, TableReplies, TableCommentLikes} {
		e.store.Truncate(table)
	}
}

func (e *Engine) usernameOf(userID any) any {
	users := e.store.Scan(TableUsers, fieldEquals("id", userID))
	if len(users) == 0 {
		return nil
	}
	return users[0]["username"]
}

func (e *Engine) likeCountOf(commentID any) int {
	return len(e.store.Scan(TableCommentLikes, fieldEquals("comment_id", commentID)))
}

func (e *Engine) replyJoinRow(reply Row) Row {
	return Row{
		"id":         reply["id"],
		"comment_id": reply["comment_id"],
		"content":    reply["content"],
		"date":       reply["date"],
		"is_deleted": reply["is_deleted"] == true,
		"username":   e.usernameOf(reply["user_id"]),
	}
}

func fieldEquals(field string, want any) func(Row) bool {
	return func(r Row) bool { return r[field] == want }
}

func project(rows []Row, field string) []Row {
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, Row{field: r[field]})
	}
	return out
}

// sortByDateAsc orders rows ascending by their date field. The sort is
// stable: rows with equal timestamps keep insertion order.
func sortByDateAsc(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rowTime(rows[i]).Before(rowTime(rows[j]))
	})
}

func rowTime(r Row) time.Time {
	if t, ok := r["date"].(time.Time); ok {
		return t
	}
	return time.Time{}
}
