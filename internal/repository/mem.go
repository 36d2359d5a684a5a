package repository

import (
	"agora/internal/memstore"
	"agora/internal/models"
)

// Helpers shared by the memstore-backed repositories.

func rowString(r memstore.Row, key string) string {
	s, _ := r[key].(string)
	return s
}

func rowBool(r memstore.Row, key string) bool {
	b, _ := r[key].(bool)
	return b
}

func commentRowFromMem(r memstore.Row) models.CommentRow {
	return models.CommentRow{
		ID:        rowString(r, "id"),
		Username:  rowString(r, "username"),
		Date:      r["date"],
		Content:   rowString(r, "content"),
		IsDeleted: rowBool(r, "is_deleted"),
		LikeCount: r["like_count"],
	}
}

func replyRowFromMem(r memstore.Row) models.ReplyRow {
	return models.ReplyRow{
		ID:        rowString(r, "id"),
		CommentID: rowString(r, "comment_id"),
		Content:   rowString(r, "content"),
		Date:      r["date"],
		IsDeleted: rowBool(r, "is_deleted"),
		Username:  rowString(r, "username"),
	}
}
