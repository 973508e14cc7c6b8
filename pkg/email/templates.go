package email

import (
	"bytes"
	"fmt"
	"html/template"

	"carrental/pkg/model"
)

const (
	SubjectOTP                 = "Your OTP Code"
	SubjectBookingConfirmation = "Booking Confirmation"
)

func OTPMessage(to, code string) Message {
	return Message{
		To:      to,
		Subject: SubjectOTP,
		Body:    fmt.Sprintf("Your OTP is %s", code),
	}
}

var bookingConfirmationTmpl = template.Must(template.New("booking").Parse(`
<h1>Booking Confirmation</h1>
<p>Dear {{.ContactName}},</p>
<p>Your booking has been confirmed successfully.</p>
<h2>Booking Summary</h2>
<p><strong>Pickup Location:</strong> {{.Pickup}}</p>
<p><strong>Dropoff Location:</strong> {{.Dropoff}}</p>
{{- if .Distance}}
<p><strong>Total Distance:</strong> {{.Distance}} km</p>
{{- end}}
<p><strong>Total Price:</strong> ${{.TotalPrice}}</p>
<p>Thank you for choosing our service.</p>
`))

type bookingConfirmationData struct {
	ContactName string
	Pickup      string
	Dropoff     string
	Distance    string
	TotalPrice  string
}

func BookingConfirmation(b *model.Booking) (Message, error) {
	data := bookingConfirmationData{
		ContactName: b.ContactName,
		Pickup:      b.PickupLocation.Address,
		Dropoff:     b.DropoffLocation.Address,
		TotalPrice:  fmt.Sprintf("%.2f", b.TotalPrice),
	}
	if b.Distance != nil {
		data.Distance = formatDistance(*b.Distance)
	}

	var buf bytes.Buffer
	if err := bookingConfirmationTmpl.Execute(&buf, data); err != nil {
		return Message{}, fmt.Errorf("render booking confirmation: %w", err)
	}

	return Message{
		To:      b.ContactEmail,
		Subject: SubjectBookingConfirmation,
		Body:    buf.String(),
		HTML:    true,
	}, nil
}

func formatDistance(km float64) string {
	return fmt.Sprintf("%.2f", km)
}
