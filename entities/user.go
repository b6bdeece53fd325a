package entities

import "time"

// FarmDetails is the farmer-declared farm profile. TotalLandArea is the
// figure the farmer reports, not a sum over Land records; regional analytics
// read this field on purpose.
type FarmDetails struct {
	TotalLandArea float64  `json:"totalLandArea"`
	Crops         []string `gorm:"serializer:json" json:"crops"`
	Equipment     []string `gorm:"serializer:json" json:"equipment"`
	Experience    int      `json:"experience"` // years
}

type Preferences struct {
	EmailNotifications bool   `json:"emailNotifications"`
	SMSNotifications   bool   `json:"smsNotifications"`
	PushNotifications  bool   `json:"pushNotifications"`
	Language           string `json:"language"`
	Theme              string `json:"theme"`
}

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `json:"name"`
	Email    string `gorm:"uniqueIndex" json:"email"` // stored lowercased
	Password string `json:"-"`                        // bcrypt hash, never serialized
	Role     string `gorm:"index" json:"role"`        // farmer|government|admin|analyst|staff
	Phone    string `json:"phone,omitempty"`
	Location string `gorm:"index" json:"location,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
	IsActive bool   `json:"isActive"`

	LastLogin   time.Time   `json:"lastLogin"`
	Preferences Preferences `gorm:"embedded;embeddedPrefix:pref_" json:"preferences"`

	// Farmer profile
	FarmDetails FarmDetails `gorm:"embedded;embeddedPrefix:farm_" json:"farmDetails"`

	// Government profile
	Department  string   `json:"department,omitempty"`
	Position    string   `json:"position,omitempty"`
	Permissions []string `gorm:"serializer:json" json:"permissions,omitempty"` // read|write|admin|approve|report

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		EmailNotifications: true,
		PushNotifications:  true,
		Language:           "en",
		Theme:              "light",
	}
}
