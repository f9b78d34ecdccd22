package notify

import (
	"bytes"
	"html/template"

	"paxala/internal/i18n"
	"paxala/internal/model"
)

var bookingSubjects = map[i18n.Locale]string{
	i18n.English: "We received your booking request",
	i18n.Arabic:  "لقد تلقينا طلب الحجز الخاص بك",
	i18n.Hebrew:  "קיבלנו את בקשת ההזמנה שלך",
}

var bookingTmpl = template.Must(template.New("booking").Parse(
	`<p>{{.Greeting}} {{.Booking.Name}},</p>
<p>{{.Booking.Service}}: {{.Booking.Date}} {{.Booking.TimeSlot}}</p>`))

var greetings = map[i18n.Locale]string{
	i18n.English: "Hello",
	i18n.Arabic:  "مرحبا",
	i18n.Hebrew:  "שלום",
}

// BookingReceived is the confirmation sent to the person who booked.
func BookingReceived(b *model.Booking) (Message, error) {
	locale, ok := i18n.Parse(b.Locale)
	if !ok {
		locale = i18n.Default
	}

	var body bytes.Buffer
	err := bookingTmpl.Execute(&body, struct {
		Greeting string
		Booking  *model.Booking
	}{greetings[locale], b})
	if err != nil {
		return Message{}, err
	}

	return Message{
		To:      []string{b.Email},
		Subject: bookingSubjects[locale],
		HTML:    body.String(),
	}, nil
}

var inquiryTmpl = template.Must(template.New("inquiry").Parse(
	`<p><strong>{{.Name}}</strong> &lt;{{.Email}}&gt;{{if .Phone}} · {{.Phone}}{{end}}</p>
{{if .Company}}<p>{{.Company}}</p>{{end}}
<p>{{.Message}}</p>`))

// InquiryReceived notifies the studio inbox of a contact form message.
func InquiryReceived(inbox string, inq *model.ContactInquiry) (Message, error) {
	var body bytes.Buffer
	if err := inquiryTmpl.Execute(&body, inq); err != nil {
		return Message{}, err
	}
	subject := "New inquiry from " + inq.Name
	if inq.Subject != "" {
		subject += ": " + inq.Subject
	}
	return Message{
		To:      []string{inbox},
		Subject: subject,
		HTML:    body.String(),
		Text:    inq.Message,
	}, nil
}
