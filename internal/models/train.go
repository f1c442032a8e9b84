package models

import (
	"github.com/uptrace/bun"
)

type TrainType struct {
	bun.BaseModel `bun:"table:train_types"`

	ID   int64  `bun:"id,pk,autoincrement" json:"id"`
	Name string `bun:"name,notnull,unique" json:"name"`
}

type Train struct {
	bun.BaseModel `bun:"table:trains,alias:t"`

	ID            int64  `bun:"id,pk,autoincrement" json:"id"`
	Name          string `bun:"name,notnull,unique:trains_name_type" json:"name"`
	CargoCount    int    `bun:"cargo_count,notnull" json:"cargo_count"`
	SeatsPerCargo int    `bun:"seats_per_cargo,notnull" json:"seats_per_cargo"`
	TrainTypeID   int64  `bun:"train_type_id,notnull,unique:trains_name_type" json:"train_type_id"`

	TrainType *TrainType `bun:"rel:belongs-to,join:train_type_id=id" json:"train_type,omitempty"`
}

// TrainLayout is the physical seating capacity of a train: cargo
// cars numbered 1..CargoCount, each holding seats 1..SeatsPerCargo.
type TrainLayout struct {
	CargoCount    int `json:"cargo_count"`
	SeatsPerCargo int `json:"seats_per_cargo"`
}

func (t *Train) Layout() TrainLayout {
	return TrainLayout{
		CargoCount:    t.CargoCount,
		SeatsPerCargo: t.SeatsPerCargo,
	}
}
