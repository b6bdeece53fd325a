package repositoryImp

import (
	"time"

	"gorm.io/gorm"

	"greenlands/entities"
	"greenlands/pkg/communication/repository"
)

type commRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.CommunicationRepository { return &commRepo{db} }

func (r *commRepo) CreateMessage(m *entities.Message) error { return r.db.Create(m).Error }
func (r *commRepo) SaveMessage(m *entities.Message) error   { return r.db.Save(m).Error }

func (r *commRepo) DeleteMessage(id uint) error {
	return r.db.Delete(&entities.Message{}, id).Error
}

func (r *commRepo) MessageByID(id uint) (*entities.Message, error) {
	var m entities.Message
	if err := r.db.Preload("Sender").Preload("Recipient").First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *commRepo) MessagesForUser(userID uint) ([]entities.Message, error) {
	var out []entities.Message
	err := r.db.Preload("Sender").Preload("Recipient").
		Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *commRepo) UnreadCount(userID uint) (int64, error) {
	var n int64
	err := r.db.Model(&entities.Message{}).
		Where("recipient_id = ? AND read = ?", userID, false).Count(&n).Error
	return n, err
}

func (r *commRepo) RecentMessages(userID uint, limit int) ([]entities.Message, error) {
	var out []entities.Message
	err := r.db.Preload("Sender").Preload("Recipient").
		Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Order("created_at DESC").Limit(limit).Find(&out).Error
	return out, err
}

func (r *commRepo) ActiveAnnouncements() ([]entities.Announcement, error) {
	var out []entities.Announcement
	err := r.db.Where("expires_at > ?", time.Now()).
		Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *commRepo) CreateSupportRequest(s *entities.SupportRequest) error {
	return r.db.Create(s).Error
}

func (r *commRepo) SaveSupportRequest(s *entities.SupportRequest) error {
	return r.db.Save(s).Error
}

func (r *commRepo) SupportRequestByID(id uint) (*entities.SupportRequest, error) {
	var s entities.SupportRequest
	if err := r.db.Preload("User").First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *commRepo) SupportRequests() ([]entities.SupportRequest, error) {
	var out []entities.SupportRequest
	err := r.db.Preload("User").Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *commRepo) CreateNotification(n *entities.Notification) error {
	return r.db.Create(n).Error
}

func (r *commRepo) UnreadNotifications(userID uint) ([]entities.Notification, error) {
	var out []entities.Notification
	err := r.db.Where("(user_id IS NULL OR user_id = ?) AND read = ?", userID, false).
		Order("created_at DESC").Find(&out).Error
	return out, err
}
