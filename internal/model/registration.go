package model

import "time"

// Registration 旅客登記資料，ID 與 CreatedAt 僅由資料庫指定
type Registration struct {
	ID          int       `db:"id" json:"id"`
	FullName    string    `db:"full_name" json:"fullName"`
	Sex         string    `db:"sex" json:"sex"`
	Phone       string    `db:"phone" json:"phone"`
	Email       string    `db:"email" json:"email"`
	Destination string    `db:"destination" json:"destination"`
	City        string    `db:"city" json:"city"`
	Persons     int       `db:"persons" json:"persons"`
	TravelTime  string    `db:"travel_time" json:"travelTime"`
	Message     string    `db:"message" json:"message"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}
