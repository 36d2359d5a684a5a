package memstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine() *Engine {
	return NewEngine(NewTableStore())
}

func seedUser(t *testing.T, e *Engine, id, username string) {
	t.Helper()
	_, err := e.Exec(InsertUser{ID: id, Username: username, Password: "secret", FullName: username})
	require.NoError(t, err)
}

func TestEngine_InsertReturningProjections(t *testing.T) {
	t.Parallel()
	e := newTestEngine()

	res, err := e.Exec(InsertThread{
		ID: "thread-1", Title: "First", Body: "body", Owner: "user-1",
		Date: time.Now(), Returning: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.RowCount)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, Row{"id": "thread-1", "title": "First", "owner": "user-1"}, res.Rows[0])

	res, err = e.Exec(InsertComment{
		ID: "comment-1", Content: "hi", Date: time.Now(),
		ThreadID: "thread-1", UserID: "user-1",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.RowCount)
	assert.Empty(t, res.Rows)
}

func TestEngine_CommentJoinAttachesUsernameAndLikeCount(t *testing.T) {
	t.Parallel()
	e := newTestEngine()

	seedUser(t, e, "user-1", "alice")
	seedUser(t, e, "user-2", "bob")

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := e.Exec(InsertComment{ID: "comment-1", Content: "first", Date: base, ThreadID: "thread-1", UserID: "user-1"})
	require.NoError(t, err)
	_, err = e.Exec(InsertComment{ID: "comment-2", Content: "second", Date: base.Add(time.Minute), ThreadID: "thread-1", UserID: "user-2", Deleted: true})
	require.NoError(t, err)

	for _, userID := range []string{"user-1", "user-2"} {
		_, err = e.Exec(InsertCommentLike{ID: "commentlike-" + userID, CommentID: "comment-1", UserID: userID})
		require.NoError(t, err)
	}

	res, err := e.Exec(SelectCommentsByThread{ThreadID: "thread-1"})
	require.NoError(t, err)
	require.Equal(t, 2, res.RowCount)

	first := res.Rows[0]
	assert.Equal(t, "comment-1", first["id"])
	assert.Equal(t, "alice", first["username"])
	assert.Equal(t, 2, first["like_count"])
	assert.Equal(t, false, first["is_deleted"])

	second := res.Rows[1]
	assert.Equal(t, "bob", second["username"])
	assert.Equal(t, 0, second["like_count"])
	assert.Equal(t, true, second["is_deleted"])
}

func TestEngine_CommentsOrderedByDateAscStable(t *testing.T) {
	t.Parallel()
	e := newTestEngine()
	seedUser(t, e, "user-1", "alice")

	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	// Inserted out of order, with a timestamp tie between comment-2 and comment-3.
	_, _ = e.Exec(InsertComment{ID: "comment-4", Content: "d", Date: base.Add(2 * time.Hour), ThreadID: "thread-1", UserID: "user-1"})
	_, _ = e.Exec(InsertComment{ID: "comment-2", Content: "b", Date: base.Add(time.Hour), ThreadID: "thread-1", UserID: "user-1"})
	_, _ = e.Exec(InsertComment{ID: "comment-3", Content: "c", Date: base.Add(time.Hour), ThreadID: "thread-1", UserID: "user-1"})
	_, _ = e.Exec(InsertComment{ID: "comment-1", Content: "a", Date: base, ThreadID: "thread-1", UserID: "user-1"})

	res, err := e.Exec(SelectCommentsByThread{ThreadID: "thread-1"})
	require.NoError(t, err)

	ids := make([]string, 0, len(res.Rows))
	for _, r := range res.Rows {
		ids = append(ids, r["id"].(string))
	}
	assert.Equal(t, []string{"comment-1", "comment-2", "comment-3", "comment-4"}, ids)
}

func TestEngine_ThreadDetailJoinsOwnerUsername(t *testing.T) {
	t.Parallel()
	e := newTestEngine()
	seedUser(t, e, "user-1", "alice")

	date := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	_, err := e.Exec(InsertThread{ID: "thread-1", Title: "Hello", Body: "world", Owner: "user-1", Date: date})
	require.NoError(t, err)

	res, err := e.Exec(SelectThreadDetail{ID: "thread-1"})
	require.NoError(t, err)
	require.Equal(t, 1, res.RowCount)
	assert.Equal(t, "alice", res.Rows[0]["username"])
	assert.Equal(t, date, res.Rows[0]["date"])

	missing, err := e.Exec(SelectThreadDetail{ID: "thread-404"})
	require.NoError(t, err)
	assert.Equal(t, 0, missing.RowCount)
}

func TestEngine_ReplyJoins(t *testing.T) {
	t.Parallel()
	e := newTestEngine()
	seedUser(t, e, "user-1", "alice")

	base := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	_, _ = e.Exec(InsertComment{ID: "comment-1", Content: "c", Date: base, ThreadID: "thread-1", UserID: "user-1"})
	_, _ = e.Exec(InsertComment{ID: "comment-9", Content: "other thread", Date: base, ThreadID: "thread-2", UserID: "user-1"})
	_, _ = e.Exec(InsertReply{ID: "reply-2", Content: "later", CommentID: "comment-1", UserID: "user-1", Date: base.Add(time.Minute)})
	_, _ = e.Exec(InsertReply{ID: "reply-1", Content: "earlier", CommentID: "comment-1", UserID: "user-1", Date: base, Deleted: true})
	_, _ = e.Exec(InsertReply{ID: "reply-9", Content: "elsewhere", CommentID: "comment-9", UserID: "user-1", Date: base})

	byThread, err := e.Exec(SelectRepliesByThread{ThreadID: "thread-1"})
	require.NoError(t, err)
	require.Equal(t, 2, byThread.RowCount)
	assert.Equal(t, "reply-1", byThread.Rows[0]["id"])
	assert.Equal(t, true, byThread.Rows[0]["is_deleted"])
	assert.Equal(t, "alice", byThread.Rows[0]["username"])
	assert.Equal(t, "reply-2", byThread.Rows[1]["id"])

	byIDs, err := e.Exec(SelectRepliesByCommentIDs{CommentIDs: []string{"comment-1"}})
	require.NoError(t, err)
	assert.Equal(t, 2, byIDs.RowCount)

	none, err := e.Exec(SelectRepliesByCommentIDs{CommentIDs: []string{"comment-404"}})
	require.NoError(t, err)
	assert.Equal(t, 0, none.RowCount)
}

func TestEngine_SoftDeleteZeroRowsIsNotAnError(t *testing.T) {
	t.Parallel()
	e := newTestEngine()

	res, err := e.Exec(SoftDeleteReply{ID: "reply-404"})
	require.NoError(t, err)
	assert.Equal(t, 0, res.RowCount)

	res, err = e.Exec(SoftDeleteComment{ID: "comment-404"})
	require.NoError(t, err)
	assert.Equal(t, 0, res.RowCount)
}

func TestEngine_CommentLikeLifecycle(t *testing.T) {
	t.Parallel()
	e := newTestEngine()

	exists, err := e.Exec(CommentLikeExists{CommentID: "comment-1", UserID: "user-1"})
	require.NoError(t, err)
	assert.Equal(t, 0, exists.RowCount)

	_, err = e.Exec(InsertCommentLike{ID: "commentlike-1", CommentID: "comment-1", UserID: "user-1"})
	require.NoError(t, err)

	exists, err = e.Exec(CommentLikeExists{CommentID: "comment-1", UserID: "user-1"})
	require.NoError(t, err)
	assert.Equal(t, 1, exists.RowCount)

	removed, err := e.Exec(DeleteCommentLike{CommentID: "comment-1", UserID: "user-1"})
	require.NoError(t, err)
	assert.Equal(t, 1, removed.RowCount)

	exists, err = e.Exec(CommentLikeExists{CommentID: "comment-1", UserID: "user-1"})
	require.NoError(t, err)
	assert.Equal(t, 0, exists.RowCount)
}

func TestEngine_UserFieldProjection(t *testing.T) {
	t.Parallel()
	e := newTestEngine()
	seedUser(t, e, "user-1", "alice")

	res, err := e.Exec(SelectUserField{Field: "password", Username: "alice"})
	require.NoError(t, err)
	require.Equal(t, 1, res.RowCount)
	assert.Equal(t, Row{"password": "secret"}, res.Rows[0])

	_, err = e.Exec(SelectUserField{Field: "fullname", Username: "alice"})
	var unsupported *UnsupportedOperationError
	require.ErrorAs(t, err, &unsupported)
}

type bogusCommand struct{}

func (bogusCommand) isCommand() {}

func TestEngine_UnknownCommandIsUnsupported(t *testing.T) {
	t.Parallel()
	e := newTestEngine()

	_, err := e.Exec(bogusCommand{})
	var unsupported *UnsupportedOperationError
	require.ErrorAs(t, err, &unsupported)
	assert.Contains(t, unsupported.Error(), "unsupported in-memory query")
}

func TestEngine_TruncateAll(t *testing.T) {
	t.Parallel()
	e := newTestEngine()
	seedUser(t, e, "user-1", "alice")
	_, _ = e.Exec(InsertThread{ID: "thread-1", Title: "t", Body: "b", Owner: "user-1", Date: time.Now()})

	e.TruncateAll()

	users, err := e.Exec(SelectUserByID{ID: "user-1"})
	require.NoError(t, err)
	assert.Equal(t, 0, users.RowCount)
	threads, err := e.Exec(ThreadExists{ID: "thread-1"})
	require.NoError(t, err)
	assert.Equal(t, 0, threads.RowCount)
}
