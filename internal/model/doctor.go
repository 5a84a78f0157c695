package model

type Doctor struct {
	ID   string `db:"id" json:"id" validate:"notblank,max=64"`
	Name string `db:"name" json:"name" validate:"notblank"`
}
