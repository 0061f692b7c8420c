package models

// ProfileDetails is the patient profile created together with its user.
// A row never exists without the owning user (foreign key, cascade on delete).
type ProfileDetails struct {
	UserID   string  `db:"user_id"`
	FullName string  `db:"fullname"`
	Age      int     `db:"age"`
	Gender   string  `db:"gender"`
	WeightKg float64 `db:"weight_in_kg"`
	HeightCm float64 `db:"height_cm"`
	Phone    string  `db:"phone"`
	Address  string  `db:"address"`
}

// ProfileRow is one row returned by the profile insert.
type ProfileRow struct {
	UserID string `json:"user_id"`
}

// InsertResult mirrors the driver-level result of the profile insert.
// Registration answers with it verbatim; existing clients read rows[0].user_id.
type InsertResult struct {
	Command  string       `json:"command"`
	RowCount int          `json:"rowCount"`
	Rows     []ProfileRow `json:"rows"`
}
