package models

// Professor is a row of the professors table.
type Professor struct {
	ID       int64  `db:"id" json:"id"`
	FullName string `db:"fullname" json:"fullname"`
	Tel      string `db:"tel" json:"tel"`
	Username string `db:"username" json:"username"`
	Password string `db:"password" json:"-"`
}
