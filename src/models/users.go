package models

import "time"

type User struct {
	ARNNumber   int64     `gorm:"primaryKey;autoIncrement:false;column:arn_number"`
	Email       string    `gorm:"column:email;uniqueIndex;size:254;not null"`
	FirstName   string    `gorm:"column:first_name;size:50"`
	LastName    string    `gorm:"column:last_name;size:50"`
	Password    string    `gorm:"column:password;size:128"`
	IsActive    bool      `gorm:"column:is_active"`
	IsStaff     bool      `gorm:"column:is_staff"`
	IsSuperuser bool      `gorm:"column:is_superuser"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
