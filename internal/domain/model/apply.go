package model

import (
	"fmt"
	"net/url"
)

const whatsAppBaseURL = "https://wa.me/"

// ApplyMessage is the pre-filled message sent when a visitor applies.
func ApplyMessage(job JobPosting) string {
	return fmt.Sprintf(
		"Hello! I'm interested in applying for the position: %s (Job ID: %s). "+
			"Could you please provide more information about the application process?",
		job.Title, job.ID,
	)
}

// ApplyLink builds the WhatsApp deep link that opens a chat with number
// pre-filled with ApplyMessage(job).
func ApplyLink(number string, job JobPosting) string {
	return whatsAppBaseURL + url.PathEscape(number) + "?text=" + url.QueryEscape(ApplyMessage(job))
}
