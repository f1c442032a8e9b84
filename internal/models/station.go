package models

import (
	"github.com/uptrace/bun"
)

type Station struct {
	bun.BaseModel `bun:"table:stations,alias:s"`

	ID        int64   `bun:"id,pk,autoincrement" json:"id"`
	Name      string  `bun:"name,notnull,unique:stations_name_coords" json:"name"`
	Latitude  float64 `bun:"latitude,notnull,unique:stations_name_coords" json:"latitude"`
	Longitude float64 `bun:"longitude,notnull,unique:stations_name_coords" json:"longitude"`
}

type Route struct {
	bun.BaseModel `bun:"table:routes,alias:r"`

	ID            int64 `bun:"id,pk,autoincrement" json:"id"`
	SourceID      int64 `bun:"source_id,notnull,unique:routes_src_dst_dist" json:"source_id"`
	DestinationID int64 `bun:"destination_id,notnull,unique:routes_src_dst_dist" json:"destination_id"`
	Distance      int   `bun:"distance,notnull,unique:routes_src_dst_dist" json:"distance"`

	Source      *Station `bun:"rel:belongs-to,join:source_id=id" json:"source,omitempty"`
	Destination *Station `bun:"rel:belongs-to,join:destination_id=id" json:"destination,omitempty"`
}
