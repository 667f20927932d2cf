package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Requester автор входящего события в Telegram
type Requester struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
}

// FullName имя и фамилия через пробел
func (r Requester) FullName() string {
	return strings.TrimSpace(r.FirstName + " " + r.LastName)
}

// Mention @username или прочерк, если его нет
func (r Requester) Mention() string {
	if r.Username == "" {
		return "—"
	}
	return r.Username
}

// BookingRequest принятая заявка на слот
type BookingRequest struct {
	ID        uuid.UUID `json:"id"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Time      string    `json:"time"` // HH:MM
	Requester Requester `json:"requester"`
	CreatedAt time.Time `json:"created_at"`
}

func NewBookingRequest(date, slot string, requester Requester, now time.Time) BookingRequest {
	return BookingRequest{
		ID:        uuid.New(),
		Date:      date,
		Time:      slot,
		Requester: requester,
		CreatedAt: now,
	}
}
