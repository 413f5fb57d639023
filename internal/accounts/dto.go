package accounts

import (
	"github.com/kkpa/jbh/internal"
	"github.com/kkpa/jbh/internal/core/common/validation"
	"github.com/kkpa/jbh/pkg/date"
)

const DescriptionMaxLength = 255

// Accounts is the wire shape of an account. Dates travel as yyyy-MM-dd and
// are null when absent.
type Accounts struct {
	ID          *int64     `json:"id"`
	Description string     `json:"description"`
	CreatedAt   *date.Date `json:"createdAt"`
	UpdatedAt   *date.Date `json:"updatedAt"`
}

func (a *Accounts) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("description", a.Description).MaxLength(DescriptionMaxLength)
	return v.Validate()
}
