package libs

import (
	"fmt"

	"bazaar-api/models"

	"gopkg.in/gomail.v2"
)

type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(host string, port int, user, pass, from string) (*Mailer, error) {
	if host == "" || user == "" || pass == "" {
		return nil, fmt.Errorf("SMTP configuration missing")
	}
	if from == "" {
		from = user
	}
	return &Mailer{dialer: gomail.NewDialer(host, port, user, pass), from: from}, nil
}

func (m *Mailer) SendOrderConfirmation(to string, order *models.Order) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("Order Confirmation #%s - Bazaar", order.ID))
	msg.SetBody("text/html", OrderConfirmationBody(order))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func OrderConfirmationBody(order *models.Order) string {
	rows := ""
	for _, item := range order.Items {
		rows += fmt.Sprintf(`
            <tr><td>%s</td><td>%d</td><td>%s</td></tr>`,
			item.Name, item.Quantity, FormatAmount(item.UnitPrice*int64(item.Quantity)))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background-color: white; padding: 30px; border-radius: 10px; }
        .order-box { background-color: #f0f9ff; padding: 20px; margin: 20px 0; border-radius: 8px; }
        table { width: 100%%; border-collapse: collapse; }
        td { padding: 6px 0; }
    </style>
</head>
<body>
    <div class="container">
        <h2>Order Confirmation</h2>
        <p>Thank you for your order!</p>
        <div class="order-box">
            <p><strong>Order Number:</strong> %s</p>
            <table>%s
            </table>
            <p><strong>Total Amount:</strong> %s</p>
        </div>
    </div>
</body>
</html>
`, order.ID, rows, FormatAmount(order.TotalAmount))
}

// FormatAmount renders minor units as a decimal amount, 2599 -> "25.99".
func FormatAmount(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%02d", sign, minor/100, minor%100)
}
