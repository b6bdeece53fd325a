package controllerImp

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"greenlands/entities"
	"greenlands/pkg/apperr"
	"greenlands/pkg/communication/hub"
	"greenlands/pkg/communication/mailer"
	"greenlands/pkg/communication/repository"
	"greenlands/pkg/middleware"
	userrepo "greenlands/pkg/user/repository"
	"greenlands/pkg/validate"
)

type CommCtrl struct {
	repo       repository.CommunicationRepository
	users      userrepo.UserRepository
	hub        *hub.Hub
	mail       *mailer.Mailer
	adminEmail string
}

func New(repo repository.CommunicationRepository, users userrepo.UserRepository,
	h *hub.Hub, mail *mailer.Mailer, adminEmail string) *CommCtrl {
	return &CommCtrl{repo: repo, users: users, hub: h, mail: mail, adminEmail: adminEmail}
}

func (h *CommCtrl) ListMessages(c echo.Context) error {
	ident, _ := middleware.IdentityFrom(c)
	msgs, err := h.repo.MessagesForUser(ident.ID)
	if err != nil {
		return apperr.Server(c, err)
	}
	return c.JSON(http.StatusOK, msgs)
}

func (h *CommCtrl) GetMessage(c echo.Context) error {
	ident, _ := middleware.IdentityFrom(c)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return apperr.NotFound(c, "Message not found")
	}
	m, err := h.repo.MessageByID(uint(id))
	if err != nil {
		return apperr.NotFound(c, "Message not found")
	}
	if m.SenderID != ident.ID && m.RecipientID != ident.ID {
		return apperr.Forbidden(c)
	}
	// viewing as recipient marks the message read
	if m.RecipientID == ident.ID && !m.Read {
		m.Read = true
		if err := h.repo.SaveMessage(m); err != nil {
			return apperr.Server(c, err)
		}
	}
	return c.JSON(http.StatusOK, m)
}

type sendReq struct {
	RecipientID uint   `json:"recipientId" validate:"required"`
	Subject     string `json:"subject" validate:"required"`
	Content     string `json:"content" validate:"required"`
	Priority    string `json:"priority"`
}

func (h *CommCtrl) SendMessage(c echo.Context) error {
	ident, _ := middleware.IdentityFrom(c)
	var req sendReq
	if err := c.Bind(&req); err != nil {
		return apperr.Validation(c, "bad json")
	}
	if err := c.Validate(&req); err != nil {
		return apperr.Fields(c, validate.Fields(err))
	}
	if _, err := h.users.FindByID(req.RecipientID); err != nil {
		return apperr.NotFound(c, "Recipient not found")
	}
	priority := req.Priority
	if priority == "" {
		priority = "normal"
	}
	m := &entities.Message{
		SenderID:    ident.ID,
		RecipientID: req.RecipientID,
		Subject:     req.Subject,
		Content:     req.Content,
		Priority:    priority,
	}
	if err := h.repo.CreateMessage(m); err != nil {
		return apperr.Server(c, err)
	}
	created, err := h.repo.MessageByID(m.ID)
	if err != nil {
		return apperr.Server(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *CommCtrl) MarkMessageRead(c echo.Context) error {
	ident, _ := middleware.IdentityFrom(c)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return apperr.NotFound(c, "Message not found")
	}
	m, err := h.repo.MessageByID(uint(id))
	if err != nil {
		return apperr.NotFound(c, "Message not found")
	}
	if m.RecipientID != ident.ID {
		return apperr.Forbidden(c)
	}
	m.Read = true
	if err := h.repo.SaveMessage(m); err != nil {
		return apperr.Server(c, err)
	}
	return c.JSON(http.StatusOK, m)
}

func (h *CommCtrl) DeleteMessage(c echo.Context) error {
	ident, _ := middleware.IdentityFrom(c)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return apperr.NotFound(c, "Message not found")
	}
	m, err := h.repo.MessageByID(uint(id))
	if err != nil {
		return apperr.NotFound(c, "Message not found")
	}
	if m.SenderID != ident.ID && m.RecipientID != ident.ID {
		return apperr.Forbidden(c)
	}
	if err := h.repo.DeleteMessage(m.ID); err != nil {
		return apperr.Server(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Message deleted successfully"})
}

func (h *CommCtrl) Contacts(c echo.Context) error {
	ident, _ := middleware.IdentityFrom(c)
	contacts, err := h.users.Contacts(ident.ID)
	if err != nil {
		return apperr.Server(c, err)
	}
	return c.JSON(http.StatusOK, contacts)
}

// MessageNotifications is the badge feed: unread count plus the five newest
// messages.
func (h *CommCtrl) MessageNotifications(c echo.Context) error {
	ident, _ := middleware.IdentityFrom(c)
	unread, err := h.repo.UnreadCount(ident.ID)
	if err != nil {
		return apperr.Server(c, err)
	}
	recent, err := h.repo.RecentMessages(ident.ID, 5)
	if err != nil {
		return apperr.Server(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"unreadCount":    unread,
		"recentMessages": recent,
	})
}

func (h *CommCtrl) Announcements(c echo.Context) error {
	anns, err := h.repo.ActiveAnnouncements()
	if err != nil {
		return apperr.Server(c, err)
	}
	return c.JSON(http.StatusOK, anns)
}

type supportReq struct {
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// CreateSupport files a ticket, records a broadcast notification for
// admin/staff, pushes a live support:new event, and mails an alert. Only the
// ticket write can fail the request.
func (h *CommCtrl) CreateSupport(c echo.Context) error {
	ident, _ := middleware.IdentityFrom(c)
	var req supportReq
	if err := c.Bind(&req); err != nil {
		return apperr.Validation(c, "bad json")
	}
	if err := c.Validate(&req); err != nil {
		return apperr.Validation(c, "Subject and message are required")
	}

	user, err := h.users.FindByID(ident.ID)
	if err != nil {
		return apperr.NotFound(c, "User not found")
	}

	ticket := &entities.SupportRequest{
		Ref:     uuid.NewString(),
		UserID:  ident.ID,
		Subject: req.Subject,
		Message: req.Message,
		Status:  "open",
	}
	if err := h.repo.CreateSupportRequest(ticket); err != nil {
		return apperr.Server(c, err)
	}

	// user=nil addresses every admin/staff account
	_ = h.repo.CreateNotification(&entities.Notification{
		Type:      "support",
		Message:   fmt.Sprintf("New support request from %s", user.Name),
		RelatedID: ticket.ID,
	})

	h.hub.Broadcast("support:new", map[string]any{
		"id":        ticket.ID,
		"ref":       ticket.Ref,
		"subject":   ticket.Subject,
		"user":      user.Name,
		"createdAt": ticket.CreatedAt,
	})

	go h.mail.Send(h.adminEmail,
		fmt.Sprintf("New Support Request: %s", ticket.Subject),
		fmt.Sprintf("User: %s <%s>\nRef: %s\nSubject: %s\nMessage: %s",
			user.Name, user.Email, ticket.Ref, ticket.Subject, ticket.Message))

	return c.JSON(http.StatusOK, map[string]any{"success": true, "ticket": ticket})
}

func (h *CommCtrl) ListSupport(c echo.Context) error {
	tickets, err := h.repo.SupportRequests()
	if err != nil {
		return apperr.Server(c, err)
	}
	return c.JSON(http.StatusOK, tickets)
}

type supportUpdateReq struct {
	Status   string `json:"status"`
	Response string `json:"response"`
}

func (h *CommCtrl) UpdateSupport(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return apperr.NotFound(c, "Support request not found")
	}
	var req supportUpdateReq
	if err := c.Bind(&req); err != nil {
		return apperr.Validation(c, "bad json")
	}
	if req.Status != "" && req.Status != "open" && req.Status != "closed" {
		return apperr.Validation(c, "Status must be open or closed")
	}

	ticket, err := h.repo.SupportRequestByID(uint(id))
	if err != nil {
		return apperr.NotFound(c, "Support request not found")
	}
	if req.Status != "" {
		ticket.Status = req.Status
	}
	if req.Response != "" {
		ticket.Response = req.Response
	}
	if err := h.repo.SaveSupportRequest(ticket); err != nil {
		return apperr.Server(c, err)
	}
	return c.JSON(http.StatusOK, ticket)
}

func (h *CommCtrl) SupportNotifications(c echo.Context) error {
	ident, _ := middleware.IdentityFrom(c)
	notes, err := h.repo.UnreadNotifications(ident.ID)
	if err != nil {
		return apperr.Server(c, err)
	}
	return c.JSON(http.StatusOK, notes)
}

// WS is the admin/staff live event stream.
func (h *CommCtrl) WS(c echo.Context) error {
	return h.hub.Handle(c)
}
