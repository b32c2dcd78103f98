package models

// Trainer represents a trainer and their bookable hours.
type Trainer struct {
	ID        string `bson:"id" json:"id"`
	Name      string `bson:"name" json:"name"`
	Phone     string `bson:"phone,omitempty" json:"phone,omitempty"`
	Email     string `bson:"email,omitempty" json:"email,omitempty"`
	OpenHour  int    `bson:"openHour" json:"openHour"`   // local hour, inclusive
	CloseHour int    `bson:"closeHour" json:"closeHour"` // local hour, exclusive
}
