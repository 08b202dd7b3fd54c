package models

import (
	"time"
)

// Member is the registering household head. The sequence number comes from
// the database-backed member_seq sequence and is unique across all members
// ever created; the member code is fixed at insert time and never recomputed.
type Member struct {
	ID         uint   `gorm:"primaryKey"`
	Sequence   int64  `gorm:"uniqueIndex;not null"`
	MemberCode string `gorm:"uniqueIndex;not null"`

	FirstName  string    `gorm:"not null"`
	LastName   string    `gorm:"not null"`
	Gender     string    `gorm:"type:varchar(20)"`
	BirthDate  time.Time `gorm:"not null"`
	BirthPlace *string
	Email      string `gorm:"not null"`
	Phone      *string

	Street       *string
	PostalCode   *string
	City         *string
	AddressExtra *string

	IsMarried   bool `gorm:"default:false"`
	HasChildren bool `gorm:"default:false"`

	Spouse           *Spouse           `gorm:"foreignKey:MemberID"`
	Children         []Child           `gorm:"foreignKey:MemberID"`
	EmergencyContact *EmergencyContact `gorm:"foreignKey:MemberID"`

	CreatedAt time.Time
}

// Spouse exists only for members who declared a marital relationship.
type Spouse struct {
	ID       uint `gorm:"primaryKey"`
	MemberID uint `gorm:"uniqueIndex;not null"`

	FirstName  string `gorm:"not null"`
	LastName   string `gorm:"not null"`
	Gender     string `gorm:"type:varchar(20)"`
	BirthDate  *time.Time
	BirthPlace *string

	CreatedAt time.Time
}

type Child struct {
	ID       uint `gorm:"primaryKey"`
	MemberID uint `gorm:"index;not null"`

	FirstName  string `gorm:"not null"`
	LastName   string `gorm:"not null"`
	Gender     string `gorm:"type:varchar(20)"`
	BirthDate  *time.Time
	BirthPlace *string

	CreatedAt time.Time
}

// EmergencyContact is required for every member. The columns are NOT NULL on
// pointer fields so a submission without contact data fails at the insert and
// rolls the whole registration back.
type EmergencyContact struct {
	ID       uint `gorm:"primaryKey"`
	MemberID uint `gorm:"uniqueIndex;not null"`

	FirstName *string `gorm:"not null"`
	LastName  *string `gorm:"not null"`
	Phone     *string `gorm:"not null"`

	CreatedAt time.Time
}
