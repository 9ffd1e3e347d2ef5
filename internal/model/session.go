package model

import "time"

// Session 登入後的伺服器端狀態，ExpiresAt 建立後不再延長
type Session struct {
	ID        string    `json:"id"`
	AdminID   int       `json:"adminId"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired 回傳 now 時 session 是否已過期
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
