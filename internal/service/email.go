package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"bikeshop-rental-backend/internal/domain"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(to, toName, subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendQuoteNotification(ctx context.Context, email, customerName string, quote *domain.Quote) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\nHere is your rental quote %s:\n\n", customerName, quote.Reference)
	for _, line := range quote.Lines {
		fmt.Fprintf(&b, "  - Bike #%d, %s rate, %s to %s: EUR %.2f\n",
			line.BikeID, strings.ToLower(string(line.Tier)),
			line.StartDate.Format("2006-01-02"), line.EndDate.Format("2006-01-02"),
			float64(line.SubtotalCents)/100)
	}
	fmt.Fprintf(&b, "\nTotal (incl. VAT): EUR %.2f\nDeposit due at pickup: EUR %.2f\n",
		float64(quote.AmountTotalCents)/100, float64(quote.TotalDepositCents)/100)
	b.WriteString("\nBest regards,\nThe Bike Shop Team")

	subject := fmt.Sprintf("Your rental quote %s", quote.Reference)
	return s.send(email, customerName, subject, b.String())
}

func (s *emailService) SendReturnReminder(ctx context.Context, email, customerName string, contract *domain.Contract) error {
	body := fmt.Sprintf(
		"Hello %s,\n\nA friendly reminder that your rental %s is due back on %s.\n\nBest regards,\nThe Bike Shop Team",
		customerName, contract.Reference, contract.EndDate.Format("2006-01-02 15:04"))
	subject := fmt.Sprintf("Rental %s due back soon", contract.Reference)
	return s.send(email, customerName, subject, body)
}

func (s *emailService) SendOverdueNotice(ctx context.Context, email, customerName string, contract *domain.Contract) error {
	body := fmt.Sprintf(
		"Hello %s,\n\nYour rental %s was due back on %s and has not been returned. Please return the bike as soon as possible; late fees apply.\n\nBest regards,\nThe Bike Shop Team",
		customerName, contract.Reference, contract.EndDate.Format("2006-01-02 15:04"))
	subject := fmt.Sprintf("Rental %s is overdue", contract.Reference)
	return s.send(email, customerName, subject, body)
}
