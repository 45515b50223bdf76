package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Trainer is a user's collection profile, one per account username.
// Seen and Caught are filled on read from trainer_marks; they are not columns.
type Trainer struct {
	bun.BaseModel `bun:"table:trainers,alias:t"`

	ID           int       `bun:"id,pk,autoincrement" json:"id"`
	Username     string    `bun:"username,notnull,unique" json:"username"`
	TrainerName  string    `bun:"trainer_name,notnull" json:"trainerName"`
	ImgURL       string    `bun:"img_url,notnull" json:"imgUrl"`
	CreationDate time.Time `bun:"creation_date,notnull" json:"creationDate"`

	Seen   []*Pokemon `bun:"-" json:"pkmnSeen"`
	Caught []*Pokemon `bun:"-" json:"pkmnCatch"`
}

// TrainerMark links a trainer to a Pokemon it has encountered. Caught=false
// means merely seen. The unique pair keeps one row per (trainer, pokemon), so
// a Pokemon can never be both seen and caught at once; the autoincrement id
// preserves insertion order for list reads.
type TrainerMark struct {
	bun.BaseModel `bun:"table:trainer_marks,alias:tm"`

	ID        int  `bun:"id,pk,autoincrement"`
	TrainerID int  `bun:"trainer_id,notnull,unique:trainer_marks_no_dupes"`
	PokemonID int  `bun:"pokemon_id,notnull,unique:trainer_marks_no_dupes"`
	Caught    bool `bun:"caught,notnull"`
}
