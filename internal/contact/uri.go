// Package contact implements contact initiation: a per-dialog state
// machine that asks the backend to disclose a poster's contact detail and
// then hands off to an external communication handler via a deep link.
package contact

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/foundloss/foundloss/internal/model"
)

// DefaultMessage pre-populates the dialog message based on the item type:
// claiming a found item speaks owner-to-finder, reporting a lost item
// speaks finder-to-owner. Fully editable before send.
func DefaultMessage(item model.Item) string {
	if item.Type == model.TypeFound {
		return fmt.Sprintf(
			"Hi! I believe this %s might be mine. I lost it around %s. Could we arrange to meet so I can claim it? Thank you so much for finding it!",
			item.Title, item.Location)
	}
	return fmt.Sprintf(
		"Hi! I found your %s near %s. I have it safe with me. Please let me know how we can arrange for you to get it back!",
		item.Title, item.Location)
}

// digitsOnly strips everything but digits, as WhatsApp links require.
func digitsOnly(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// escape percent-encodes a query component. url.QueryEscape uses "+" for
// spaces, which mail and SMS handlers do not reliably decode; %20 does
// round-trip everywhere.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// BuildURI constructs the external handler link for the chosen channel
// from the disclosed contact info.
func BuildURI(method model.ContactMethod, info model.ContactInfo, item model.Item, message string) (string, error) {
	switch method {
	case model.MethodEmail:
		if info.Email == "" {
			return "", fmt.Errorf("no email disclosed for item %s", item.ID)
		}
		subject := fmt.Sprintf("Regarding %s item: %s", item.Type, item.Title)
		return fmt.Sprintf("mailto:%s?subject=%s&body=%s", info.Email, escape(subject), escape(message)), nil
	case model.MethodWhatsApp:
		digits := digitsOnly(info.Phone)
		if digits == "" {
			return "", fmt.Errorf("no phone disclosed for item %s", item.ID)
		}
		return fmt.Sprintf("https://wa.me/%s?text=%s", digits, escape(message)), nil
	case model.MethodSMS:
		if info.Phone == "" {
			return "", fmt.Errorf("no phone disclosed for item %s", item.ID)
		}
		return fmt.Sprintf("sms:%s?body=%s", info.Phone, escape(message)), nil
	default:
		return "", fmt.Errorf("unknown contact method %q", method)
	}
}
