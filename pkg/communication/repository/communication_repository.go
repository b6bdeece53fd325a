package repository

import "greenlands/entities"

type CommunicationRepository interface {
	CreateMessage(m *entities.Message) error
	SaveMessage(m *entities.Message) error
	DeleteMessage(id uint) error
	MessageByID(id uint) (*entities.Message, error)
	// MessagesForUser returns messages sent or received, newest first.
	MessagesForUser(userID uint) ([]entities.Message, error)
	UnreadCount(userID uint) (int64, error)
	RecentMessages(userID uint, limit int) ([]entities.Message, error)

	ActiveAnnouncements() ([]entities.Announcement, error)

	CreateSupportRequest(s *entities.SupportRequest) error
	SaveSupportRequest(s *entities.SupportRequest) error
	SupportRequestByID(id uint) (*entities.SupportRequest, error)
	SupportRequests() ([]entities.SupportRequest, error)

	CreateNotification(n *entities.Notification) error
	// UnreadNotifications includes broadcasts (user null) and targeted rows.
	UnreadNotifications(userID uint) ([]entities.Notification, error)
}
