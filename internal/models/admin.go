package models

type Admin struct {
	ID       int    `gorm:"primaryKey" json:"id"`
	Username string `gorm:"size:100;unique;not null" json:"username"`
	Password string `gorm:"not null" json:"-"`
}
