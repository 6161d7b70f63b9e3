package settings

import (
	"html"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/dmitrymomot/soar/pkg/validator"
)

var textPolicy = bluemonday.StrictPolicy()

// ProfileUpdate changes only the fields that are non-nil.
type ProfileUpdate struct {
	Name             *string `form:"name" json:"name"`
	UserName         *string `form:"user_name" json:"userName"`
	Email            *string `form:"email" json:"email"`
	DateOfBirth      *string `form:"date_of_birth" json:"dateOfBirth"`
	PresentAddress   *string `form:"present_address" json:"presentAddress"`
	PermanentAddress *string `form:"permanent_address" json:"permanentAddress"`
	City             *string `form:"city" json:"city"`
	PostalCode       *string `form:"postal_code" json:"postalCode"`
	Country          *string `form:"country" json:"country"`
	ProfilePicture   *string `json:"profilePicture"`
}

type PreferencesUpdate struct {
	Notifications *bool   `form:"notifications" json:"notifications"`
	DarkMode      *bool   `form:"dark_mode" json:"darkMode"`
	Language      *string `form:"language" json:"language"`
}

type SecurityUpdate struct {
	TwoFactorEnabled   *bool      `form:"two_factor_enabled" json:"twoFactorEnabled"`
	LastPasswordChange *time.Time `json:"lastPasswordChange"`
}

// Validate checks present fields. now bounds the date of birth.
func (u ProfileUpdate) Validate(now time.Time) error {
	var rules []validator.Rule
	if u.Name != nil {
		rules = append(rules, validator.Required("name", *u.Name), validator.MaxLen("name", *u.Name, 100))
	}
	if u.UserName != nil {
		rules = append(rules, validator.Required("userName", *u.UserName), validator.MaxLen("userName", *u.UserName, 50))
	}
	if u.Email != nil {
		rules = append(rules, validator.Required("email", *u.Email), validator.ValidEmail("email", *u.Email))
	}
	if u.DateOfBirth != nil {
		rules = append(rules,
			validator.ValidDate("dateOfBirth", *u.DateOfBirth),
			validator.PastDate("dateOfBirth", *u.DateOfBirth, now),
		)
	}
	rules = append(rules, optionalMax("presentAddress", u.PresentAddress, 200)...)
	rules = append(rules, optionalMax("permanentAddress", u.PermanentAddress, 200)...)
	rules = append(rules, optionalMax("city", u.City, 100)...)
	rules = append(rules, optionalMax("postalCode", u.PostalCode, 20)...)
	rules = append(rules, optionalMax("country", u.Country, 100)...)
	rules = append(rules, optionalMax("profilePicture", u.ProfilePicture, 512)...)
	return validator.Apply(rules...)
}

func (u PreferencesUpdate) Validate(languages []string) error {
	if u.Language == nil {
		return nil
	}
	return validator.Apply(validator.InList("language", *u.Language, languages))
}

func (u SecurityUpdate) Validate(now time.Time) error {
	if u.LastPasswordChange == nil {
		return nil
	}
	return validator.Apply(validator.Rule{
		Check: func() bool { return !u.LastPasswordChange.After(now) },
		Error: validator.ValidationError{
			Field:             "lastPasswordChange",
			Message:           "must be in the past",
			TranslationKey:    "validation.past_date",
			TranslationValues: map[string]string{"field": "lastPasswordChange"},
		},
	})
}

func optionalMax(field string, v *string, max int) []validator.Rule {
	if v == nil {
		return nil
	}
	return []validator.Rule{validator.MaxLen(field, *v, max)}
}

// normalize strips markup from the text fields. StrictPolicy escapes what it
// keeps, so entities are decoded back to plain text.
func (u ProfileUpdate) normalize() ProfileUpdate {
	for _, f := range []**string{
		&u.Name, &u.UserName, &u.Email, &u.DateOfBirth, &u.PresentAddress,
		&u.PermanentAddress, &u.City, &u.PostalCode, &u.Country,
	} {
		if *f != nil {
			clean := html.UnescapeString(textPolicy.Sanitize(**f))
			*f = &clean
		}
	}
	return u
}

func (u ProfileUpdate) apply(p *Profile) {
	set(&p.Name, u.Name)
	set(&p.UserName, u.UserName)
	set(&p.Email, u.Email)
	set(&p.DateOfBirth, u.DateOfBirth)
	set(&p.PresentAddress, u.PresentAddress)
	set(&p.PermanentAddress, u.PermanentAddress)
	set(&p.City, u.City)
	set(&p.PostalCode, u.PostalCode)
	set(&p.Country, u.Country)
	if u.ProfilePicture != nil {
		p.ProfilePicture = *u.ProfilePicture
	}
}

func (u PreferencesUpdate) apply(p *Preferences) {
	if u.Notifications != nil {
		p.Notifications = *u.Notifications
	}
	if u.DarkMode != nil {
		p.DarkMode = *u.DarkMode
	}
	if u.Language != nil {
		p.Language = *u.Language
	}
}

func (u SecurityUpdate) apply(s *Security) {
	if u.TwoFactorEnabled != nil {
		s.TwoFactorEnabled = *u.TwoFactorEnabled
	}
	if u.LastPasswordChange != nil {
		s.LastPasswordChange = u.LastPasswordChange.UTC()
	}
}

func set(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
