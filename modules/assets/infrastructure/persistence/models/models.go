package models

import (
	"database/sql"
	"time"
)

type Asset struct {
	ID        string
	TenantID  string
	ParentID  sql.NullString
	Promoted  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
