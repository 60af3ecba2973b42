// Package form implements the structured input forms: the item submission
// form and the sign-up form. Validation runs every check and reports all
// violated fields together; nothing short-circuits on the first failure.
package form

import (
	"regexp"
	"strings"

	"github.com/foundloss/foundloss/internal/model"
)

var (
	// emailRe is the loose local@domain.tld shape check; the backend does
	// the strict validation.
	emailRe = regexp.MustCompile(`^\S+@\S+\.\S+$`)

	// phoneRe accepts digits, spaces, +, -, parentheses, ten chars minimum.
	phoneRe = regexp.MustCompile(`^\+?[\d\s\-()]{10,}$`)
)

// FieldErrors carries one optional message per known field. A fixed struct
// rather than a map keyed by field name, so a typo in a field reference is
// a compile error instead of a silent miss.
type FieldErrors struct {
	Title        string
	Description  string
	Category     string
	Color        string
	Location     string
	ContactEmail string
	ContactPhone string

	FullName        string
	Email           string
	Phone           string
	Password        string
	ConfirmPassword string
}

// OK reports whether no field has an error.
func (e FieldErrors) OK() bool { return e == FieldErrors{} }

// Fields lists the names of the violated fields, for summary display.
func (e FieldErrors) Fields() []string {
	var out []string
	add := func(name, msg string) {
		if msg != "" {
			out = append(out, name)
		}
	}
	add("title", e.Title)
	add("description", e.Description)
	add("category", e.Category)
	add("color", e.Color)
	add("location", e.Location)
	add("contact_email", e.ContactEmail)
	add("contact_phone", e.ContactPhone)
	add("full_name", e.FullName)
	add("email", e.Email)
	add("phone", e.Phone)
	add("password", e.Password)
	add("confirm_password", e.ConfirmPassword)
	return out
}

// ItemForm collects the item submission fields. Latitude/Longitude are set
// by geolocation capture and stay nil for a hand-typed location.
type ItemForm struct {
	Title        string
	Description  string
	Category     string
	Color        string
	Location     string
	Latitude     *float64
	Longitude    *float64
	ContactEmail string
	ContactPhone string
	ImageURL     string
}

// Validate runs all checks and returns every violated field.
func (f ItemForm) Validate() FieldErrors {
	var e FieldErrors
	if strings.TrimSpace(f.Title) == "" {
		e.Title = "Title is required"
	}
	if strings.TrimSpace(f.Description) == "" {
		e.Description = "Description is required"
	}
	if f.Category == "" {
		e.Category = "Category is required"
	} else if !model.IsCategory(f.Category) {
		e.Category = "Unknown category"
	}
	if strings.TrimSpace(f.Color) == "" {
		e.Color = "Color is required"
	}
	if strings.TrimSpace(f.Location) == "" {
		e.Location = "Location is required"
	}
	switch {
	case strings.TrimSpace(f.ContactEmail) == "":
		e.ContactEmail = "Contact email is required"
	case !emailRe.MatchString(f.ContactEmail):
		e.ContactEmail = "Invalid email format"
	}
	switch {
	case strings.TrimSpace(f.ContactPhone) == "":
		e.ContactPhone = "Contact phone is required"
	case !phoneRe.MatchString(f.ContactPhone):
		e.ContactPhone = "Invalid phone number"
	}
	return e
}

// Draft converts the form into a creation request of the given type. The
// second return is false (with the field errors) when validation fails;
// no request body is produced in that case.
func (f ItemForm) Draft(typ model.ItemType) (model.ItemDraft, FieldErrors) {
	errs := f.Validate()
	if !errs.OK() {
		return model.ItemDraft{}, errs
	}
	return model.ItemDraft{
		Type:         typ,
		Title:        strings.TrimSpace(f.Title),
		Description:  strings.TrimSpace(f.Description),
		Category:     f.Category,
		Color:        f.Color,
		Location:     strings.TrimSpace(f.Location),
		Latitude:     f.Latitude,
		Longitude:    f.Longitude,
		ContactEmail: strings.TrimSpace(f.ContactEmail),
		ContactPhone: strings.TrimSpace(f.ContactPhone),
		ImageURL:     strings.TrimSpace(f.ImageURL),
	}, FieldErrors{}
}

// SignupForm collects the registration fields.
type SignupForm struct {
	FullName        string
	Email           string
	Phone           string
	Password        string
	ConfirmPassword string
}

// Validate runs all checks and returns every violated field.
func (f SignupForm) Validate() FieldErrors {
	var e FieldErrors
	if strings.TrimSpace(f.FullName) == "" {
		e.FullName = "Full name is required"
	}
	switch {
	case strings.TrimSpace(f.Email) == "":
		e.Email = "Email is required"
	case !emailRe.MatchString(f.Email):
		e.Email = "Invalid email format"
	}
	switch {
	case strings.TrimSpace(f.Phone) == "":
		e.Phone = "Phone number is required"
	case !phoneRe.MatchString(f.Phone):
		e.Phone = "Invalid phone number"
	}
	switch {
	case f.Password == "":
		e.Password = "Password is required"
	case len(f.Password) < 6:
		e.Password = "Password must be at least 6 characters"
	}
	if f.Password != f.ConfirmPassword {
		e.ConfirmPassword = "Passwords do not match"
	}
	return e
}

// Profile converts the form into a registration request; false with the
// field errors when validation fails.
func (f SignupForm) Profile() (model.Profile, FieldErrors) {
	errs := f.Validate()
	if !errs.OK() {
		return model.Profile{}, errs
	}
	return model.Profile{
		Email:    strings.TrimSpace(f.Email),
		Password: f.Password,
		FullName: strings.TrimSpace(f.FullName),
		Phone:    strings.TrimSpace(f.Phone),
	}, FieldErrors{}
}
