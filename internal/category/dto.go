package category

import (
	"github.com/kkpa/jbh/internal"
	"github.com/kkpa/jbh/internal/core/common/validation"
)

const (
	NameMaxLength = 10
	TypeLength    = 1
)

// Category is the wire shape of a category. ID is nil until the row is
// first persisted.
type Category struct {
	ID   *int64 `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

func (c *Category) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("name", c.Name).Required().MaxLength(NameMaxLength)
	v.Field("type", c.Type).Required().ExactLength(TypeLength)
	return v.Validate()
}
