package message

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/light-bringer/bijoux-service/internal/app/cart/domain"
)

// FormatOrderMessage renders the cart as the French plain-text order
// block sent to the shop over WhatsApp or SMS. Each line item carries
// its 1-based position, product link, quantity, unit price and subtotal
// to two decimals; the grand total matches domain.Total.
func FormatOrderMessage(state domain.State, siteOrigin string) string {
	var b strings.Builder

	b.WriteString("*NOUVELLE COMMANDE DE BIJOUX*\n\n")
	b.WriteString("*Details de la commande :*\n\n")

	for i, item := range state {
		fmt.Fprintf(&b, "*%d. %s*\n", i+1, item.Name)
		fmt.Fprintf(&b, "   Lien : %s/produit/%s\n", siteOrigin, item.ProductID)
		fmt.Fprintf(&b, "   Quantite : %d\n", item.Quantity)
		fmt.Fprintf(&b, "   Prix unitaire : %s $\n", item.UnitPrice.String())
		fmt.Fprintf(&b, "   Sous-total : *%s $*\n\n", item.Subtotal().String())
	}

	fmt.Fprintf(&b, "*TOTAL : %s $*\n\n", domain.Total(state).String())
	b.WriteString("Je souhaite finaliser cette commande.\n")
	b.WriteString("Pouvez-vous me confirmer la disponibilite et les modalites de paiement/livraison ?\n\n")
	b.WriteString("Merci !")

	return b.String()
}

// Encode percent-encodes the message for embedding in a deep link.
func Encode(message string) string {
	return url.QueryEscape(message)
}

// WhatsAppLink builds the wa.me deep link opening a chat with the shop
// number pre-filled with the encoded message.
func WhatsAppLink(encoded, number string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", number, encoded)
}

// SMSLink builds the sms: URI pre-filled with the encoded message.
func SMSLink(encoded, number string) string {
	return fmt.Sprintf("sms:%s?body=%s", number, encoded)
}
