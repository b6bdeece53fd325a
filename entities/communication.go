package entities

import "time"

type Message struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SenderID    uint      `gorm:"index" json:"senderId"`
	Sender      *User     `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	RecipientID uint      `gorm:"index" json:"recipientId"`
	Recipient   *User     `gorm:"foreignKey:RecipientID" json:"recipient,omitempty"`
	Subject     string    `json:"subject"`
	Content     string    `json:"content"`
	Priority    string    `json:"priority"` // low|normal|high
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"timestamp"`
}

type SupportRequest struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Ref       string    `gorm:"uniqueIndex" json:"ref"` // uuid, quoted in mail alerts
	UserID    uint      `gorm:"index" json:"userId"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Status    string    `json:"status"` // open|closed
	Response  string    `json:"response,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Notification with UserID nil is addressed to every admin/staff account.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Type      string    `json:"type"` // support|system
	Message   string    `json:"message"`
	UserID    *uint     `gorm:"index" json:"userId"`
	RelatedID uint      `json:"relatedId,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

type Announcement struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Type      string    `json:"type"`     // info|warning|alert
	Priority  string    `json:"priority"` // low|medium|high
	CreatedAt time.Time `json:"timestamp"`
	ExpiresAt time.Time `json:"expiresAt"`
}
