package chat

import "time"

// Exchange is one persisted question/answer pair. Both sides are written
// together after the provider call succeeds; there is no partial row.
type Exchange struct {
	ID               string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID           string    `gorm:"type:varchar(36);index;not null" json:"-"`
	UserMessage      string    `gorm:"type:text;not null" json:"user_message"`
	AssistantMessage string    `gorm:"type:text;not null" json:"assistant_message"`
	CreatedAt        time.Time `gorm:"index" json:"created_at"`
}

func (Exchange) TableName() string { return "chat_exchanges" }
