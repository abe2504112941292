package like

import (
	"github.com/deppfellow/photogram/internal/validation"
)

// Result is the state of a (login, photo) pair after a toggle.
type Result struct {
	PhotoID int64 `json:"photo_id"`
	Liked   bool  `json:"liked"`
	Likes   int64 `json:"likes"`
}

type ToggleLikeRequest struct {
	PhotoID int64 `param:"id" validate:"required,min=1"`
}

func (r *ToggleLikeRequest) Validate() error {
	return validation.Struct(r)
}
