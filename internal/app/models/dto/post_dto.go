package dto

import "github.com/yigit/welearn/internal/app/models"

// CreatePostRequest is the body of POST /posts. Length rules are checked
// by the post service so that every client gets the same messages.
type CreatePostRequest struct {
	Title      string             `json:"title" example:"Hello World"`
	Content    string             `json:"content" example:"This is a sufficiently long body of text."`
	Author     string             `json:"author" example:"Prof. Silva"`
	AuthorType *models.AuthorType `json:"authorType,omitempty" example:"teacher" enums:"teacher,student"`
}

// UpdatePostRequest is the body of PUT /posts/:id. Omitted fields are left unchanged.
type UpdatePostRequest struct {
	Title   *string `json:"title,omitempty" example:"Hello again"`
	Content *string `json:"content,omitempty"`
	Author  *string `json:"author,omitempty"`
}
