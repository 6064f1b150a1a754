package models

import "time"

type Post struct {
	ID            int        `json:"id"`
	AuthorID      int        `json:"author"`
	Title         string     `json:"title"`
	Text          string     `json:"text"`
	CreatedDate   time.Time  `json:"created_date"`
	PublishedDate *time.Time `json:"published_date,omitempty"`
}

// IsPublished reports whether the post has a publication timestamp.
// Publishing is one-way: the timestamp is set once and never cleared.
func (p *Post) IsPublished() bool {
	return p.PublishedDate != nil
}

// CanModify reports whether the acting principal owns the post.
// Edit and delete handlers reject with 403 when this is false.
func (p *Post) CanModify(userID int) bool {
	return p.AuthorID == userID
}

// PostList is the shape returned by the list endpoints.
type PostList struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Text        string `json:"text"`
	IsPublished bool   `json:"is_published"`
}

// PostView is the detail shape, also embedded in CommentDetail.
type PostView struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Text        string `json:"text"`
	Author      int    `json:"author"`
	IsPublished bool   `json:"is_published"`
}

func (p *Post) ToList() PostList {
	return PostList{
		ID:          p.ID,
		Title:       p.Title,
		Text:        p.Text,
		IsPublished: p.IsPublished(),
	}
}

func (p *Post) ToView() PostView {
	return PostView{
		ID:          p.ID,
		Title:       p.Title,
		Text:        p.Text,
		Author:      p.AuthorID,
		IsPublished: p.IsPublished(),
	}
}
