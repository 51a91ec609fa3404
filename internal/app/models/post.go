package models

import "encoding/json"

// AuthorType identifies which entity wrote a post.
type AuthorType string

const (
	AuthorTeacher AuthorType = "teacher"
	AuthorStudent AuthorType = "student"
)

// Valid reports whether a is a known author type.
func (a AuthorType) Valid() bool {
	return a == AuthorTeacher || a == AuthorStudent
}

// Post field limits, counted in characters.
const (
	PostTitleMin   = 5
	PostTitleMax   = 255
	PostContentMin = 20
	PostContentMax = 10000
	PostAuthorMin  = 2
	PostAuthorMax  = 100
)

// Post is a blog article written by a teacher or a student.
type Post struct {
	ID         int64      `json:"id" example:"1"`
	Title      string     `json:"title" example:"Introdução ao React"`
	Content    string     `json:"content" example:"React é uma biblioteca JavaScript para construir interfaces."`
	Author     string     `json:"author" example:"Prof. Silva"`
	AuthorType AuthorType `json:"authorType" example:"teacher"`
	AuthorID   *int64     `json:"authorId" example:"1"`
	Timestamps
}

// UnmarshalJSON accepts the legacy "ID" key when "id" is absent.
func (p *Post) UnmarshalJSON(b []byte) error {
	type plain Post
	aux := struct {
		*plain
		LegacyID *int64 `json:"ID"`
	}{plain: (*plain)(p)}

	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if p.ID == 0 && aux.LegacyID != nil {
		p.ID = *aux.LegacyID
	}
	return nil
}
