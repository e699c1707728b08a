package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/trinetrasoft/cloud-kitchen/app/models"
	"github.com/trinetrasoft/cloud-kitchen/app/utils/format"
)

type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

func (c Config) Enabled() bool {
	return c.Host != "" && c.From != ""
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type Mailer struct {
	config Config
	send   sendFunc
}

func NewMailer(cfg Config) *Mailer {
	return &Mailer{
		config: cfg,
		send:   smtp.SendMail,
	}
}

func (m *Mailer) SendHTMLEmail(to, subject, htmlBody string) error {
	headers := [][2]string{
		{"From", m.config.From},
		{"To", to},
		{"Subject", subject},
		{"MIME-Version", "1.0"},
		{"Content-Type", "text/html; charset=\"UTF-8\""},
	}

	var msg strings.Builder
	for _, h := range headers {
		fmt.Fprintf(&msg, "%s: %s\r\n", h[0], h[1])
	}
	msg.WriteString("\r\n" + htmlBody)

	var auth smtp.Auth
	if m.config.Username != "" {
		auth = smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)
	}
	addr := fmt.Sprintf("%s:%s", m.config.Host, m.config.Port)

	if err := m.send(addr, auth, m.config.From, []string{to}, []byte(msg.String())); err != nil {
		zap.S().Errorf("Mailer.SendHTMLEmail: failed to send to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// OrderPlaced sends the customer a receipt grouped by kitchen.
func (m *Mailer) OrderPlaced(ctx context.Context, order *models.Order, customer *models.User) error {
	if customer == nil || customer.Email == "" {
		return nil
	}
	body, err := BuildReceiptEmailBody(order, customer)
	if err != nil {
		return err
	}
	return m.SendHTMLEmail(customer.Email, "Your Trinetra order "+order.OrderNumber, body)
}

type receiptLine struct {
	Name      string
	Quantity  int
	LineTotal string
}

type receiptKitchen struct {
	Name  string
	Lines []receiptLine
}

type receiptData struct {
	CustomerName string
	OrderNumber  string
	Kitchens     []receiptKitchen
	Subtotal     string
	PlatformFee  string
	DeliveryFee  string
	Tax          string
	Discount     string
	HasDiscount  bool
	Total        string
}

var receiptTemplate = template.Must(template.New("receipt").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Order {{.OrderNumber}}</title></head>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Thanks for your order, {{.CustomerName}}!</h2>
  <p>Order number <strong>{{.OrderNumber}}</strong></p>
  {{range .Kitchens}}
  <h3>{{.Name}}</h3>
  <table>
    {{range .Lines}}<tr><td>{{.Quantity}} &times; {{.Name}}</td><td align="right">{{.LineTotal}}</td></tr>{{end}}
  </table>
  {{end}}
  <table>
    <tr><td>Subtotal</td><td align="right">{{.Subtotal}}</td></tr>
    <tr><td>Platform fee</td><td align="right">{{.PlatformFee}}</td></tr>
    <tr><td>Delivery</td><td align="right">{{.DeliveryFee}}</td></tr>
    <tr><td>Tax</td><td align="right">{{.Tax}}</td></tr>
    {{if .HasDiscount}}<tr><td>Subscription discount</td><td align="right">-{{.Discount}}</td></tr>{{end}}
    <tr><td><strong>Total</strong></td><td align="right"><strong>{{.Total}}</strong></td></tr>
  </table>
</body>
</html>
`))

func BuildReceiptEmailBody(order *models.Order, customer *models.User) (string, error) {
	byKitchen := map[string]*receiptKitchen{}
	var keys []string
	for i := range order.Items {
		item := &order.Items[i]
		group, ok := byKitchen[item.KitchenID]
		if !ok {
			name := item.KitchenName()
			if name == "" {
				name = "Kitchen " + item.KitchenID
			}
			group = &receiptKitchen{Name: name}
			byKitchen[item.KitchenID] = group
			keys = append(keys, item.KitchenID)
		}
		name := item.MenuItemName()
		if name == "" {
			name = item.MenuItemID
		}
		group.Lines = append(group.Lines, receiptLine{
			Name:      name,
			Quantity:  item.Quantity,
			LineTotal: format.USD(item.LineTotal()),
		})
	}
	sort.SliceStable(keys, func(i, j int) bool { return byKitchen[keys[i]].Name < byKitchen[keys[j]].Name })

	data := receiptData{
		CustomerName: customer.FullName(),
		OrderNumber:  order.OrderNumber,
		Subtotal:     format.USD(order.TotalAmount),
		PlatformFee:  format.USD(order.PlatformFee),
		DeliveryFee:  format.DeliveryFee(order.DeliveryFee),
		Tax:          format.USD(order.TaxAmount),
		Discount:     format.USD(order.DiscountAmount),
		HasDiscount:  order.DiscountAmount.IsPositive(),
		Total:        format.USD(order.FinalAmount),
	}
	for _, k := range keys {
		data.Kitchens = append(data.Kitchens, *byKitchen[k])
	}

	var buf bytes.Buffer
	if err := receiptTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render receipt: %w", err)
	}
	return buf.String(), nil
}
