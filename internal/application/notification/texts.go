package notification

import (
	"net/url"
	"strings"

	"github.com/storefront/backend/internal/domain/trade"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys
const (
	keyOrderReceivedShopper = "order.received.shopper"
	keyOrderReceivedSeller  = "order.received.seller"
	keyOrderStatusChanged   = "order.status_changed"
	keyStatusPrefix         = "status."
)

// SupportedLanguages lists the notification languages, default first
var SupportedLanguages = []language.Tag{language.French, language.English}

var templates = newTemplates()

func newTemplates() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.French))
	set := func(tag language.Tag, key, msg string) {
		if err := b.SetString(tag, key, msg); err != nil {
			panic(err)
		}
	}

	set(language.French, keyOrderReceivedShopper, "Bonjour ! Votre commande *%s* a bien été reçue.\nSuivez-la ici :\n%s")
	set(language.French, keyOrderReceivedSeller, "Nouvelle commande *%s* reçue !\nConnectez-vous pour la traiter :\n%s")
	set(language.French, keyOrderStatusChanged, "Votre commande *%s* vient d'être mise à jour.\nNouveau statut : *%s*")
	set(language.French, keyStatusPrefix+string(trade.OrderStatusProcessing), "En cours de traitement")
	set(language.French, keyStatusPrefix+string(trade.OrderStatusProcessed), "Traitée")
	set(language.French, keyStatusPrefix+string(trade.OrderStatusCancelled), "Annulée")
	set(language.French, keyStatusPrefix+string(trade.OrderStatusRefused), "Refusée")

	set(language.English, keyOrderReceivedShopper, "Hello! Your order *%s* has been received.\nTrack it here:\n%s")
	set(language.English, keyOrderReceivedSeller, "New order *%s* received!\nLog in to process it:\n%s")
	set(language.English, keyOrderStatusChanged, "Your order *%s* has been updated.\nNew status: *%s*")
	set(language.English, keyStatusPrefix+string(trade.OrderStatusProcessing), "Processing")
	set(language.English, keyStatusPrefix+string(trade.OrderStatusProcessed), "Processed")
	set(language.English, keyStatusPrefix+string(trade.OrderStatusCancelled), "Cancelled")
	set(language.English, keyStatusPrefix+string(trade.OrderStatusRefused), "Refused")
	return b
}

// Texts renders notification messages in one language with links to the
// public storefront
type Texts struct {
	printer *message.Printer
	baseURL string
}

// NewTexts creates Texts for lang (a BCP 47 tag such as "fr" or "en").
// Unsupported languages fall back to French.
func NewTexts(lang, publicBaseURL string) *Texts {
	matcher := language.NewMatcher(SupportedLanguages)
	_, index, _ := matcher.Match(language.Make(lang))
	return &Texts{
		printer: message.NewPrinter(SupportedLanguages[index], message.Catalog(templates)),
		baseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

// OrderReceivedShopper is sent to the shopper with a link to their order history
func (t *Texts) OrderReceivedShopper(sellerID, phone, reference string) string {
	return t.printer.Sprintf(keyOrderReceivedShopper, reference, t.OrdersURL(sellerID, phone))
}

// OrderReceivedSeller is sent to the seller with a link to the admin login
func (t *Texts) OrderReceivedSeller(reference string) string {
	return t.printer.Sprintf(keyOrderReceivedSeller, reference, t.baseURL+"/login")
}

// StatusChanged is sent to the shopper when an admin sets a new status
func (t *Texts) StatusChanged(reference string, status trade.OrderStatus) string {
	return t.printer.Sprintf(keyOrderStatusChanged, reference, t.StatusLabel(status))
}

// StatusLabel returns the human label of a status, or the raw value if unknown
func (t *Texts) StatusLabel(status trade.OrderStatus) string {
	if !status.IsValid() {
		return status.String()
	}
	return t.printer.Sprintf(keyStatusPrefix + status.String())
}

// OrdersURL is the shopper's order history page
func (t *Texts) OrdersURL(sellerID, phone string) string {
	return t.baseURL + "/client/" + url.PathEscape(sellerID) + "/" + url.PathEscape(phone) + "/orders"
}
