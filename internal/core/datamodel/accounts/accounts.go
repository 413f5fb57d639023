package accounts

import "time"

const (
	TableName    = "accounts"
	SequenceName = "seq_accounts_id"
)

// Accounts is one row of the accounts table. created_at and updated_at are
// calendar dates supplied by the client, so gorm's automatic timestamps are
// switched off for them.
type Accounts struct {
	ID          int64      `gorm:"column:id;primaryKey;autoIncrement"`
	Description string     `gorm:"column:description;type:varchar(255)"`
	CreatedAt   *time.Time `gorm:"column:created_at;type:date;autoCreateTime:false"`
	UpdatedAt   *time.Time `gorm:"column:updated_at;type:date;autoUpdateTime:false"`
}

func (Accounts) TableName() string {
	return TableName
}

var Columns = map[string]string{
	"id":          "id",
	"description": "description",
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
}
