package photo

import (
	"github.com/deppfellow/photogram/internal/model"
)

type Photo struct {
	ID          int64   `json:"id" db:"id"`
	OwnerLogin  string  `json:"owner_login" db:"owner_login"`
	Title       string  `json:"title" db:"title"`
	Description *string `json:"description" db:"description"`
	URL         string  `json:"url" db:"url"`
	Likes       int64   `json:"likes" db:"likes"`
	Liked       bool    `json:"liked" db:"liked"`
	model.Timestamps
}
