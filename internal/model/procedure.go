package model

// Procedure is owned by the doctor who performs it. Duration is in minutes.
type Procedure struct {
	ID          string `db:"id" json:"id" validate:"notblank,max=64"`
	Name        string `db:"name" json:"name" validate:"notblank"`
	Description string `db:"description" json:"description"`
	Duration    int    `db:"duration" json:"duration" validate:"gte=0"`
	DoctorID    string `db:"doctor_id" json:"doctor_id" validate:"notblank,max=64"`
}
