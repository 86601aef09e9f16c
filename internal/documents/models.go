package documents

import "time"

// Document is a stored health record: metadata plus the uploaded file
// encoded as base64 text. Type (blood_test, xray, prescription, other) and
// FileType (pdf, image) are open strings; the client sends one of the known
// categories but the server does not enforce it. Date is the user-supplied
// clinical date, distinct from CreatedAt.
type Document struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID    string    `gorm:"type:varchar(36);index;not null" json:"user_id"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	Type      string    `gorm:"type:varchar(32);not null" json:"type"`
	Date      time.Time `gorm:"index;not null" json:"date"`
	Notes     *string   `gorm:"type:text" json:"notes"`
	FileData  string    `gorm:"type:longtext;not null" json:"file_data"`
	FileType  string    `gorm:"type:varchar(16);not null" json:"file_type"`
	CreatedAt time.Time `json:"created_at"`
}

func (Document) TableName() string { return "documents" }
