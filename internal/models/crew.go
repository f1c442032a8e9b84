package models

import (
	"fmt"

	"github.com/uptrace/bun"
)

type Crew struct {
	bun.BaseModel `bun:"table:crews,alias:c"`

	ID        int64  `bun:"id,pk,autoincrement" json:"id"`
	FirstName string `bun:"first_name,notnull" json:"first_name"`
	LastName  string `bun:"last_name,notnull" json:"last_name"`
}

func (c *Crew) FullName() string {
	return fmt.Sprintf("%s %s", c.FirstName, c.LastName)
}
