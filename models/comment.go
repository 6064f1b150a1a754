package models

import "time"

type Comment struct {
	ID          int       `json:"id"`
	PostID      int       `json:"post"`
	AuthorID    int       `json:"author"`
	Text        string    `json:"text"`
	Approved    bool      `json:"approved"`
	CreatedDate time.Time `json:"created_date"`
}

func (c *Comment) IsApproved() bool {
	return c.Approved
}

func (c *Comment) CanModify(userID int) bool {
	return c.AuthorID == userID
}

// CommentSummary references its post by id. Used for comment detail
// and the post-scoped comment listing.
type CommentSummary struct {
	ID         int    `json:"id"`
	Post       int    `json:"post"`
	Author     int    `json:"author"`
	Text       string `json:"text"`
	IsApproved bool   `json:"is_approved"`
}

// CommentDetail embeds the full post. Used for the approved comments listing.
type CommentDetail struct {
	ID         int      `json:"id"`
	Post       PostView `json:"post"`
	Author     int      `json:"author"`
	Text       string   `json:"text"`
	IsApproved bool     `json:"is_approved"`
}

func (c *Comment) ToSummary() CommentSummary {
	return CommentSummary{
		ID:         c.ID,
		Post:       c.PostID,
		Author:     c.AuthorID,
		Text:       c.Text,
		IsApproved: c.IsApproved(),
	}
}

func (c *Comment) ToDetail(post PostView) CommentDetail {
	return CommentDetail{
		ID:         c.ID,
		Post:       post,
		Author:     c.AuthorID,
		Text:       c.Text,
		IsApproved: c.IsApproved(),
	}
}
