package service

import (
	"facilitybooking/internal/config"
	"fmt"
	"log"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// MessageTransport delivers already rendered emails and text messages.
type MessageTransport interface {
	SendEmail(toEmailAddress, toName, subject, plainTextContent, htmlContent string) error
	SendSMS(toNumber, messageBody string) error
}

type NotifyService struct {
	sendgrid config.SendGridConfig
	twilio   config.TwilioConfig
}

func NewNotifyService(sg config.SendGridConfig, tw config.TwilioConfig) *NotifyService {
	return &NotifyService{sendgrid: sg, twilio: tw}
}

func (n *NotifyService) SendEmail(toEmailAddress, toName, subject, plainTextContent, htmlContent string) error {
	if n.sendgrid.APIKey == "" {
		log.Println("WARNING: SENDGRID_API_KEY is not configured. Email will not be sent.")
		return fmt.Errorf("SENDGRID_API_KEY is not configured")
	}
	if n.sendgrid.FromEmail == "" {
		log.Println("WARNING: SENDGRID_FROM_EMAIL is not configured. Email will not be sent.")
		return fmt.Errorf("SENDGRID_FROM_EMAIL is not configured")
	}

	from := mail.NewEmail(n.sendgrid.FromName, n.sendgrid.FromEmail)
	to := mail.NewEmail(toName, toEmailAddress)
	message := mail.NewSingleEmail(from, subject, to, plainTextContent, htmlContent)

	client := sendgrid.NewSendClient(n.sendgrid.APIKey)
	response, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email via SendGrid to %s: %v", toEmailAddress, err)
		return fmt.Errorf("sendgrid delivery failed: %w", err)
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		log.Printf("Email sent to %s (subject: %s). Status: %d", toEmailAddress, subject, response.StatusCode)
		return nil
	}

	log.Printf("SendGrid rejected email to %s. Status: %d, Body: %s", toEmailAddress, response.StatusCode, response.Body)
	return fmt.Errorf("sendgrid returned status %d: %s", response.StatusCode, response.Body)
}

func (n *NotifyService) SendSMS(toNumber, messageBody string) error {
	if n.twilio.AccountSID == "" || n.twilio.AuthToken == "" || n.twilio.FromNumber == "" {
		log.Println("WARNING: Twilio credentials (SID, token or from number) are not configured. SMS will not be sent.")
		return fmt.Errorf("twilio credentials not fully configured")
	}
	if !strings.HasPrefix(toNumber, "+") {
		log.Printf("WARNING: destination number '%s' is not in E.164 format. The SMS may fail.", toNumber)
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username:   n.twilio.AccountSID,
		Password:   n.twilio.AuthToken,
		AccountSid: n.twilio.AccountSID,
	})

	params := &openapi.CreateMessageParams{}
	params.SetTo(toNumber)
	params.SetFrom(n.twilio.FromNumber)
	params.SetBody(messageBody)

	resp, err := client.Api.CreateMessage(params)
	if err != nil {
		log.Printf("Error sending SMS to %s via Twilio: %v", toNumber, err)
		return fmt.Errorf("sms delivery failed: %w", err)
	}
	if resp != nil && resp.Sid != nil {
		log.Printf("SMS sent to %s. Message SID: %s", toNumber, *resp.Sid)
	}
	return nil
}
