package service

import (
	"bytes"
	"facilitybooking/internal/entities"
	"facilitybooking/internal/templates"
	"fmt"
	"log"
	"time"
)

// Notifier tells a customer about a status change of their checkout.
type Notifier interface {
	NotifyCheckout(c entities.CheckoutResponse, status string)
}

// SenderService renders booking messages and hands them to a MessageTransport.
type SenderService struct {
	transport MessageTransport
	loc       *time.Location
	brand     string
	async     bool
}

func NewSenderService(transport MessageTransport, loc *time.Location, brand string) *SenderService {
	if loc == nil {
		loc = time.UTC
	}
	return &SenderService{transport: transport, loc: loc, brand: brand, async: true}
}

// NotifyCheckout sends the email in the background and the SMS inline. Failures are only logged.
func (s *SenderService) NotifyCheckout(c entities.CheckoutResponse, status string) {
	s.SendBookingSMS(c, status)
	s.SendBookingEmail(c, status)
}

func (s *SenderService) emailData(c entities.CheckoutResponse, status string) entities.BookingEmailData {
	return entities.BookingEmailData{
		UserName:           c.UserName,
		CheckoutCode:       c.Code,
		FacilityName:       c.FacilityName,
		Participants:       c.Participants,
		StartTimeFormatted: c.StartTime.In(s.loc).Format("02 Jan 2006 15:04 MST"),
		EndTimeFormatted:   c.EndTime.In(s.loc).Format("02 Jan 2006 15:04 MST"),
		CurrentYear:        time.Now().In(s.loc).Year(),
		Language:           c.Language,
		Status:             status,
	}
}

// BuildBookingEmail returns subject, plain text and HTML bodies in the customer's language.
func (s *SenderService) BuildBookingEmail(c entities.CheckoutResponse, status string) (string, string, string, error) {
	data := s.emailData(c, status)

	var subject, plain string
	switch c.Language {
	case "es":
		subject = fmt.Sprintf("Tu reserva en %s está %s - Código: %s", s.brand, status, data.CheckoutCode)
		plain = fmt.Sprintf(
			"Hola %s,\n\nTu reserva en %s está %s.\n\n"+
				"Detalles de la reserva:\n"+
				"Código: %s\n"+
				"Instalación: %s\n"+
				"Participantes: %d\n"+
				"Inicio: %s\n"+
				"Fin: %s\n\n"+
				"Gracias por elegir %s.",
			data.UserName, data.FacilityName, status, data.CheckoutCode, data.FacilityName, data.Participants,
			data.StartTimeFormatted, data.EndTimeFormatted, s.brand,
		)
	case "it":
		subject = fmt.Sprintf("La tua prenotazione %s è %s - Codice: %s", s.brand, status, data.CheckoutCode)
		plain = fmt.Sprintf(
			"Ciao %s,\n\nLa tua prenotazione presso %s è %s.\n\n"+
				"Dettagli della prenotazione:\n"+
				"Codice: %s\n"+
				"Struttura: %s\n"+
				"Partecipanti: %d\n"+
				"Inizio: %s\n"+
				"Fine: %s\n\n"+
				"Grazie per aver scelto %s.",
			data.UserName, data.FacilityName, status, data.CheckoutCode, data.FacilityName, data.Participants,
			data.StartTimeFormatted, data.EndTimeFormatted, s.brand,
		)
	default:
		subject = fmt.Sprintf("Your %s booking is %s - Code: %s", s.brand, status, data.CheckoutCode)
		plain = fmt.Sprintf(
			"Hello %s,\n\nYour booking at %s is %s.\n\n"+
				"Booking details:\n"+
				"Code: %s\n"+
				"Facility: %s\n"+
				"Participants: %d\n"+
				"Start: %s\n"+
				"End: %s\n\n"+
				"Thank you for choosing %s.",
			data.UserName, data.FacilityName, status, data.CheckoutCode, data.FacilityName, data.Participants,
			data.StartTimeFormatted, data.EndTimeFormatted, s.brand,
		)
	}

	var html bytes.Buffer
	if err := templates.BookingEmail.Execute(&html, data); err != nil {
		return subject, plain, "", fmt.Errorf("render booking email %s: %w", data.CheckoutCode, err)
	}
	return subject, plain, html.String(), nil
}

func (s *SenderService) SendBookingEmail(c entities.CheckoutResponse, status string) {
	subject, plain, html, err := s.BuildBookingEmail(c, status)
	if err != nil {
		// plain text still goes out
		log.Printf("ALERT: %v", err)
	}

	send := func() {
		if err := s.transport.SendEmail(c.UserEmail, c.UserName, subject, plain, html); err != nil {
			log.Printf("ALERT: email for checkout %s failed: %v", c.Code, err)
		}
	}
	if s.async {
		go send()
		return
	}
	send()
}

// BuildBookingSMS returns the short text message for a checkout.
func (s *SenderService) BuildBookingSMS(c entities.CheckoutResponse, status string) string {
	start := c.StartTime.In(s.loc).Format("02/01 15:04")
	switch c.Language {
	case "es":
		return fmt.Sprintf("%s: ¡Tu reserva %s está %s!\nInicio: %s en %s.\nMás detalles en tu correo.",
			s.brand, c.Code, status, start, c.FacilityName)
	case "it":
		return fmt.Sprintf("%s: La tua prenotazione %s è %s!\nInizio: %s presso %s.\nAltri dettagli nella tua email.",
			s.brand, c.Code, status, start, c.FacilityName)
	default:
		return fmt.Sprintf("%s: Booking %s is %s!\nStart: %s at %s.\nMore details in your email.",
			s.brand, c.Code, status, start, c.FacilityName)
	}
}

func (s *SenderService) SendBookingSMS(c entities.CheckoutResponse, status string) {
	if c.UserPhone == "" {
		return
	}
	if err := s.transport.SendSMS(c.UserPhone, s.BuildBookingSMS(c, status)); err != nil {
		log.Printf("ALERT: SMS for checkout %s to %s failed: %v", c.Code, c.UserPhone, err)
	}
}

// statusTranslation returns the checkout status in the customer's language.
func statusTranslation(status, lang string) string {
	switch lang {
	case "es":
		switch status {
		case statusPending:
			return "pendiente"
		case statusActive:
			return "confirmada"
		case statusFinished:
			return "finalizada"
		case statusCanceled, "cancelled":
			return "cancelada"
		}
	case "it":
		switch status {
		case statusPending:
			return "in attesa"
		case statusActive:
			return "confermata"
		case statusFinished:
			return "terminata"
		case statusCanceled, "cancelled":
			return "annullata"
		}
	}
	if status == statusActive {
		return "confirmed"
	}
	return status
}
