// Package templates embeds the HTML used for customer emails.
package templates

import (
	"embed"
	"html/template"
)

//go:embed *.html
var files embed.FS

// BookingEmail panics at init when the embedded template does not parse.
var BookingEmail = template.Must(template.ParseFS(files, "booking_email.html"))
