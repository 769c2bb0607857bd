package handlers

import (
	"fmt"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/polyview/moderation-api/models"
	templates "github.com/polyview/moderation-api/templates/html"
)

// sendModerationEmail sends an email using SendGrid
func sendModerationEmail(toEmail, toName, subject, htmlContent, plainText string) error {
	from := mail.NewEmail("PolyView", "no-reply@polyview.io")
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainText, htmlContent)
	client := sendgrid.NewSendClient(os.Getenv("SENDGRID_API_KEY"))
	response, err := client.Send(message)
	if err != nil {
		zap.S().Errorw("failed to send email", "error", err, "to", toEmail)
		return err
	}
	if response.StatusCode >= 400 {
		zap.S().Errorw("sendgrid returned error status", "status", response.StatusCode, "body", response.Body, "to", toEmail)
		return fmt.Errorf("sendgrid error: status %d", response.StatusCode)
	}
	zap.S().Infow("email sent successfully", "to", toEmail, "subject", subject)
	return nil
}

// sendBanNoticeEmail notifies a user that a ban was placed on their account
func sendBanNoticeEmail(toEmail, toName string, ban models.Ban) {
	expiresLine := "This ban is permanent."
	if ban.ExpiresAt != nil {
		expiresLine = fmt.Sprintf("This ban expires on %s.", ban.ExpiresAt.Format("Jan 2, 2006 at 3:04 PM MST"))
	}
	if toName == "" {
		toName = toEmail
	}
	htmlContent := templates.RenderBanNoticeEmail(toName, ban.Reason, expiresLine)
	plainText := fmt.Sprintf("Hi %s,\n\nA moderator has restricted your ability to contribute.\n\nReason: %s\n%s", toName, ban.Reason, expiresLine)
	if err := sendModerationEmail(toEmail, toName, "Account Restriction Notice", htmlContent, plainText); err != nil {
		zap.S().Errorw("failed to send ban notice email", "error", err, "to", toEmail)
	}
}
