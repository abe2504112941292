package photo

import (
	"github.com/deppfellow/photogram/internal/validation"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// ------------------------------------------------------------

type CreatePhotoRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=128"`
	Description *string `json:"description" validate:"omitempty,max=1024"`
	URL         string  `json:"url" validate:"required,url,max=2048"`
}

func (r *CreatePhotoRequest) Validate() error {
	return validation.Struct(r)
}

// ------------------------------------------------------------

type ListPhotosRequest struct {
	Limit  *int `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset *int `query:"offset" validate:"omitempty,min=0"`
}

func (r *ListPhotosRequest) Validate() error {
	return validation.Struct(r)
}

// Page returns the limit and offset with defaults applied.
func (r *ListPhotosRequest) Page() (limit, offset int) {
	limit = DefaultPageLimit
	if r.Limit != nil {
		limit = *r.Limit
	}
	if r.Offset != nil {
		offset = *r.Offset
	}
	return limit, offset
}

// ------------------------------------------------------------

type GetPhotoRequest struct {
	ID int64 `param:"id" validate:"required,min=1"`
}

func (r *GetPhotoRequest) Validate() error {
	return validation.Struct(r)
}
