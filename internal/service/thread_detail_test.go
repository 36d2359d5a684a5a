package service

import (
	"testing"
	"time"

	"agora/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleThreadDetail_Nesting(t *testing.T) {
	t.Parallel()

	thread := &models.ThreadRow{ID: "thread-1", Title: "Hello", Body: "World", Date: "2024-01-01T00:00:00Z", Username: "alice"}
	comments := []models.CommentRow{
		{ID: "comment-1", Username: "bob", Date: "2024-01-01T01:00:00Z", Content: "first", LikeCount: 2},
		{ID: "comment-2", Username: "carol", Date: "2024-01-01T02:00:00Z", Content: "second"},
	}
	replies := []models.ReplyRow{
		{ID: "reply-1", CommentID: "comment-1", Content: "re: first", Date: "2024-01-01T01:30:00Z", Username: "carol"},
		{ID: "reply-2", CommentID: "comment-2", Content: "re: second", Date: "2024-01-01T02:30:00Z", Username: "bob"},
	}

	detail := AssembleThreadDetail(thread, comments, replies)

	assert.Equal(t, "thread-1", detail.ID)
	assert.Equal(t, "alice", detail.Username)
	require.Len(t, detail.Comments, 2)
	require.Len(t, detail.Comments[0].Replies, 1)
	assert.Equal(t, "reply-1", detail.Comments[0].Replies[0].ID)
	assert.Equal(t, 2, detail.Comments[0].LikeCount)
	require.Len(t, detail.Comments[1].Replies, 1)
	assert.Equal(t, "reply-2", detail.Comments[1].Replies[0].ID)
}

func TestAssembleThreadDetail_RedactionIsIdempotent(t *testing.T) {
	t.Parallel()

	thread := &models.ThreadRow{ID: "thread-1"}
	comments := []models.CommentRow{
		{ID: "comment-1", Content: "anything at all", IsDeleted: true},
		{ID: "comment-2", Content: DeletedCommentContent, IsDeleted: true},
	}
	replies := []models.ReplyRow{
		{ID: "reply-1", CommentID: "comment-1", Content: "secret", IsDeleted: true},
		{ID: "reply-2", CommentID: "comment-1", Content: DeletedReplyContent, IsDeleted: true},
	}

	detail := AssembleThreadDetail(thread, comments, replies)

	// Deleted content always shows the marker, whatever the stored text was.
	for _, c := range detail.Comments {
		assert.Equal(t, DeletedCommentContent, c.Content)
		assert.True(t, c.IsDeleted)
	}
	for _, r := range detail.Comments[0].Replies {
		assert.Equal(t, DeletedReplyContent, r.Content)
	}
	assert.NotEqual(t, DeletedCommentContent, DeletedReplyContent)
}

func TestAssembleThreadDetail_OrphanRepliesExcluded(t *testing.T) {
	t.Parallel()

	thread := &models.ThreadRow{ID: "thread-1"}
	comments := []models.CommentRow{{ID: "comment-1", Content: "only comment"}}
	replies := []models.ReplyRow{
		{ID: "reply-1", CommentID: "comment-1", Content: "attached"},
		{ID: "reply-2", CommentID: "comment-404", Content: "orphan"},
	}

	detail := AssembleThreadDetail(thread, comments, replies)

	require.Len(t, detail.Comments, 1)
	require.Len(t, detail.Comments[0].Replies, 1)
	assert.Equal(t, "reply-1", detail.Comments[0].Replies[0].ID)
}

func TestAssembleThreadDetail_EmptyCommentsGetEmptyReplySlice(t *testing.T) {
	t.Parallel()

	detail := AssembleThreadDetail(&models.ThreadRow{ID: "thread-1"},
		[]models.CommentRow{{ID: "comment-1"}}, nil)

	require.Len(t, detail.Comments, 1)
	assert.NotNil(t, detail.Comments[0].Replies)
	assert.Empty(t, detail.Comments[0].Replies)
}

func TestNormalizeLikeCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		want int
	}{
		{"int passes through", 3, 3},
		{"int64 from sql scan", int64(7), 7},
		{"float64 from json", float64(4), 4},
		{"numeric string parsed", "3", 3},
		{"garbage string is zero", "many", 0},
		{"negative clamps to zero", -2, 0},
		{"negative string clamps to zero", "-5", 0},
		{"absent is zero", nil, 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, normalizeLikeCount(tt.in))
		})
	}
}

func TestCanonicalDate(t *testing.T) {
	t.Parallel()

	instant := time.Date(2024, 5, 1, 12, 30, 0, 0, time.FixedZone("WIB", 7*3600))

	// Strings pass through verbatim, whatever their format.
	assert.Equal(t, "2024-05-01 12:30:00", canonicalDate("2024-05-01 12:30:00"))
	// Times serialize as UTC RFC 3339.
	assert.Equal(t, "2024-05-01T05:30:00Z", canonicalDate(instant))
	assert.Equal(t, "2024-05-01T05:30:00Z", canonicalDate(&instant))
	assert.Equal(t, "", canonicalDate(nil))
}
