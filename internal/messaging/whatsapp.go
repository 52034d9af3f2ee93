package messaging

import (
	"errors"
	"net/url"
	"strings"

	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

const (
	whatsAppWebSend = "https://web.whatsapp.com/send"
	countryCode     = "55"
)

var ErrNoPhone = errors.New("phone has no digits")

// WhatsAppLink monta o link do WhatsApp Web com a mensagem pronta. Nada é
// enviado: quem abre o link é o atendente.
func WhatsAppLink(phone, message string) (string, error) {
	digits := validators.PhoneDigits(phone)
	if digits == "" {
		return "", ErrNoPhone
	}

	// Espaço vira %20, como no encodeURIComponent do navegador.
	text := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")

	return whatsAppWebSend + "?phone=" + countryCode + digits + "&text=" + text, nil
}
