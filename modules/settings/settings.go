package settings

import "time"

// Profile is the editable personal information shown on the settings page.
type Profile struct {
	Name             string `json:"name" bson:"name"`
	UserName         string `json:"userName" bson:"userName"`
	Email            string `json:"email" bson:"email"`
	DateOfBirth      string `json:"dateOfBirth" bson:"dateOfBirth"` // YYYY-MM-DD
	PresentAddress   string `json:"presentAddress" bson:"presentAddress"`
	PermanentAddress string `json:"permanentAddress" bson:"permanentAddress"`
	City             string `json:"city" bson:"city"`
	PostalCode       string `json:"postalCode" bson:"postalCode"`
	Country          string `json:"country" bson:"country"`
	ProfilePicture   string `json:"profilePicture" bson:"profilePicture"`
}

type Preferences struct {
	Notifications bool   `json:"notifications" bson:"notifications"`
	DarkMode      bool   `json:"darkMode" bson:"darkMode"`
	Language      string `json:"language" bson:"language"`
}

type Security struct {
	TwoFactorEnabled   bool      `json:"twoFactorEnabled" bson:"twoFactorEnabled"`
	LastPasswordChange time.Time `json:"lastPasswordChange" bson:"lastPasswordChange"`
}

// Settings is everything persisted for one user.
type Settings struct {
	Profile     `bson:",inline"`
	Preferences Preferences `json:"preferences" bson:"preferences"`
	Security    Security    `json:"security" bson:"security"`

	// AvatarKey is the storage key of an uploaded picture, empty for the
	// built-in default.
	AvatarKey string    `json:"avatarKey,omitempty" bson:"avatarKey,omitempty"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

const DefaultProfilePicture = "/assets/avatar-big.png"

// Defaults is what a user sees before saving anything.
func Defaults(now time.Time) Settings {
	return Settings{
		Profile: Profile{
			Name:             "Charlene Reed",
			UserName:         "Charlene Reed",
			Email:            "charlenereed@gmail.com",
			DateOfBirth:      "2000-01-01",
			PresentAddress:   "San Jose, California, USA",
			PermanentAddress: "San Jose, California, USA",
			City:             "San Jose",
			PostalCode:       "45962",
			Country:          "USA",
			ProfilePicture:   DefaultProfilePicture,
		},
		Preferences: Preferences{
			Notifications: true,
			DarkMode:      false,
			Language:      "en",
		},
		Security: Security{
			TwoFactorEnabled:   false,
			LastPasswordChange: now.UTC(),
		},
	}
}
