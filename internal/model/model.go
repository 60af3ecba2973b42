// Package model defines domain entities shared by the API client and the
// user-facing front-ends. JSON tags follow the backend wire format.
package model

import "time"

// ItemType says whether a post reports a found object or a lost one.
// Immutable after creation.
type ItemType string

const (
	TypeFound ItemType = "found"
	TypeLost  ItemType = "lost"
)

// Valid reports whether t is one of the two known item types.
func (t ItemType) Valid() bool { return t == TypeFound || t == TypeLost }

// ItemStatus is the post lifecycle state. The only legal transitions are
// active -> resolved and resolved -> active (reactivation).
type ItemStatus string

const (
	StatusActive   ItemStatus = "active"
	StatusResolved ItemStatus = "resolved"
)

// Valid reports whether s is a known status value.
func (s ItemStatus) Valid() bool { return s == StatusActive || s == StatusResolved }

// ContactMethod selects the channel used to reach a poster.
type ContactMethod string

const (
	MethodEmail    ContactMethod = "email"
	MethodWhatsApp ContactMethod = "whatsapp"
	MethodSMS      ContactMethod = "sms"
)

// Valid reports whether m is a known contact method.
func (m ContactMethod) Valid() bool {
	return m == MethodEmail || m == MethodWhatsApp || m == MethodSMS
}

// User is the server-owned account record. The password never appears here;
// it is write-only and hashed server-side.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Profile is the registration request body.
type Profile struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

// Token is the auth response envelope: a bearer credential plus the
// authenticated user.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

// Item is a single found/lost post.
type Item struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	Type         ItemType   `json:"type"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Category     string     `json:"category"`
	Color        string     `json:"color"`
	Location     string     `json:"location"`
	Latitude     *float64   `json:"latitude,omitempty"`
	Longitude    *float64   `json:"longitude,omitempty"`
	ContactEmail string     `json:"contact_email"`
	ContactPhone string     `json:"contact_phone"`
	ImageURL     string     `json:"image_url,omitempty"`
	Status       ItemStatus `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
}

// ItemDraft is the item creation request body.
type ItemDraft struct {
	Type         ItemType `json:"type"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Color        string   `json:"color"`
	Location     string   `json:"location"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	ContactEmail string   `json:"contact_email"`
	ContactPhone string   `json:"contact_phone"`
	ImageURL     string   `json:"image_url,omitempty"`
}

// ContactRequest asks the backend to disclose a poster's contact detail for
// the chosen channel. Ephemeral; never stored client-side.
type ContactRequest struct {
	ItemID  string        `json:"item_id"`
	Method  ContactMethod `json:"contact_method"`
	Message string        `json:"message"`
}

// ContactInfo is the disclosed contact detail.
type ContactInfo struct {
	Email  string        `json:"email"`
	Phone  string        `json:"phone"`
	Method ContactMethod `json:"method"`
}

// ContactResult is the contact-owner response envelope.
type ContactResult struct {
	Success     bool        `json:"success"`
	Message     string      `json:"message"`
	ContactInfo ContactInfo `json:"contact_info"`
}

// Categories is the fixed set offered by the submission form. Free-text
// categories are not accepted; "Other" is the escape hatch.
var Categories = []string{
	"Electronics", "Jewelry", "Clothing", "Bags & Wallets", "Keys",
	"Documents", "Books", "Toys", "Sports Equipment", "Accessories",
	"Glasses/Sunglasses", "Watches", "Other",
}

// Colors is the nominal palette offered by the submission form. The field
// itself stays free text on the wire.
var Colors = []string{
	"Black", "White", "Red", "Blue", "Green", "Yellow", "Orange",
	"Purple", "Pink", "Brown", "Gray", "Silver", "Gold", "Multicolor",
}

// IsCategory reports whether s is one of the fixed categories.
func IsCategory(s string) bool {
	for _, c := range Categories {
		if c == s {
			return true
		}
	}
	return false
}
