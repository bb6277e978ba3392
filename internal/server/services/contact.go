package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/carvingsite/internal/server/mailer"
)

// MaxContactAttachments caps the files a visitor may attach.
const MaxContactAttachments = 5

// ErrContactDisabled is returned when no mail relay is configured.
var ErrContactDisabled = errors.New("contact form is not configured")

type Mailer interface {
	Send(ctx context.Context, msg *mailer.Message) error
}

// ContactRequest is a message submitted through the public contact form.
type ContactRequest struct {
	Name        string              `json:"name" validate:"required,singleline"`
	Email       string              `json:"email" validate:"required,email"`
	Message     string              `json:"message" validate:"required"`
	Attachments []mailer.Attachment `json:"files" validate:"max=5"`
}

// ContactService forwards contact requests to the site owner.
type ContactService struct {
	mailer    Mailer
	recipient string
}

// NewContactService constructs a ContactService. A nil mailer leaves the
// form disabled.
func NewContactService(m Mailer, recipient string) *ContactService {
	return &ContactService{mailer: m, recipient: recipient}
}

func (s *ContactService) Send(ctx context.Context, req *ContactRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)

	if err := validateStruct(req); err != nil {
		return err
	}
	if s.mailer == nil || s.recipient == "" {
		return ErrContactDisabled
	}

	msg := &mailer.Message{
		To:          s.recipient,
		ReplyTo:     req.Email,
		ReplyToName: req.Name,
		Subject:     fmt.Sprintf("Website contact from %s", req.Name),
		Body:        contactBody(req),
		Attachments: req.Attachments,
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("send contact message: %w", err)
	}
	return nil
}

func contactBody(req *ContactRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", req.Name)
	fmt.Fprintf(&b, "Email: %s\n", req.Email)
	if n := len(req.Attachments); n > 0 {
		fmt.Fprintf(&b, "Attachments: %d\n", n)
	}
	b.WriteString("\n")
	b.WriteString(req.Message)
	b.WriteString("\n")
	return b.String()
}
