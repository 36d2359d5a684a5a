package service

import (
	"strconv"
	"time"

	"agora/internal/models"
)

// Redaction markers shown in place of soft-deleted content. Comments and
// replies each get their own marker.
const (
	DeletedCommentContent = "**comment has been deleted**"
	DeletedReplyContent   = "**reply has been deleted**"
)

// AssembleThreadDetail builds the nested thread view from three independently
// fetched row sets. Replies whose comment is not part of the comment set are
// dropped. Row order is preserved; the fetch layer returns rows ascending by
// date.
func AssembleThreadDetail(thread *models.ThreadRow, comments []models.CommentRow, replies []models.ReplyRow) *models.ThreadDetail {
	byComment := make(map[string][]models.ReplyDetail, len(comments))
	for _, r := range replies {
		content := r.Content
		if r.IsDeleted {
			content = DeletedReplyContent
		}
		byComment[r.CommentID] = append(byComment[r.CommentID], models.ReplyDetail{
			ID:        r.ID,
			CommentID: r.CommentID,
			Username:  r.Username,
			Date:      canonicalDate(r.Date),
			Content:   content,
		})
	}

	assembled := make([]models.CommentDetail, 0, len(comments))
	for _, c := range comments {
		content := c.Content
		if c.IsDeleted {
			content = DeletedCommentContent
		}
		nested := byComment[c.ID]
		if nested == nil {
			nested = []models.ReplyDetail{}
		}
		assembled = append(assembled, models.CommentDetail{
			ID:        c.ID,
			Username:  c.Username,
			Date:      canonicalDate(c.Date),
			Content:   content,
			IsDeleted: c.IsDeleted,
			LikeCount: normalizeLikeCount(c.LikeCount),
			Replies:   nested,
		})
	}

	return &models.ThreadDetail{
		ID:       thread.ID,
		Title:    thread.Title,
		Body:     thread.Body,
		Date:     canonicalDate(thread.Date),
		Username: thread.Username,
		Comments: assembled,
	}
}

// canonicalDate renders a row date as text. Strings pass through untouched;
// time values are serialized as UTC RFC 3339.
func canonicalDate(v any) string {
	switch d := v.(type) {
	case string:
		return d
	case time.Time:
		return d.UTC().Format(time.RFC3339Nano)
	case *time.Time:
		if d == nil {
			return ""
		}
		return d.UTC().Format(time.RFC3339Nano)
	default:
		return ""
	}
}

// normalizeLikeCount coerces the like_count column to a non-negative int.
// Numeric strings are parsed; anything absent, unparsable, or negative counts
// as zero.
func normalizeLikeCount(v any) int {
	var count int
	switch n := v.(type) {
	case int:
		count = n
	case int32:
		count = int(n)
	case int64:
		count = int(n)
	case float64:
		count = int(n)
	case string:
		parsed, err := strconv.Atoi(n)
		if err != nil {
			return 0
		}
		count = parsed
	default:
		return 0
	}
	if count < 0 {
		return 0
	}
	return count
}
