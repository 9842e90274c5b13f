package model

import "time"

// User is the read-only identity reference. Accounts are managed elsewhere,
// only the summary columns are read here.
type User struct {
	UserId     string    `gorm:"primaryKey;size:36" json:"id"`
	UserName   string    `gorm:"size:64;uniqueIndex" json:"username"`
	FullName   string    `gorm:"size:128" json:"fullName"`
	Email      string    `gorm:"size:128" json:"-"`
	AvatarUrl  string    `gorm:"size:512" json:"avatar"`
	CoverImage string    `gorm:"size:512" json:"coverImage"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (*User) Kind() Kind        { return KindUser }
func (u *User) GetID() string   { return u.UserId }
func (u *User) SetID(id string) { u.UserId = id }
func (u *User) OwnerID() string { return u.UserId }
func (*User) TableName() string { return KindUser.Table() }
