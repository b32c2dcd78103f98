package models

import "time"

// Client represents a personal-training client.
type Client struct {
	ID                string     `bson:"id" json:"id"`
	Name              string     `bson:"name" json:"name"`
	Phone             string     `bson:"phone" json:"phone"` // unique lookup key
	Email             string     `bson:"email,omitempty" json:"email,omitempty"`
	Goals             string     `bson:"goals,omitempty" json:"goals,omitempty"`
	TrainerID         string     `bson:"trainerId,omitempty" json:"trainerId,omitempty"`
	SessionsRemaining int        `bson:"sessionsRemaining" json:"sessionsRemaining"` // never negative
	PackageSize       int        `bson:"packageSize" json:"packageSize"`
	StartDate         time.Time  `bson:"startDate" json:"startDate"`
	LastSessionDate   *time.Time `bson:"lastSessionDate,omitempty" json:"lastSessionDate,omitempty"`
	Notes             string     `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt         time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// HasBoundedPackage reports whether the client is on a prepaid session package.
func (c *Client) HasBoundedPackage() bool {
	return c.PackageSize > 0
}
