package models

import "time"

// User roles.
const (
	RoleWorker     = "worker"
	RoleContractor = "contractor"
)

// Rank labels derived from the trust score. Never set directly; the
// ranking engine is the only writer.
const (
	RankTop      = "Top"
	RankTrusted  = "Trusted"
	RankReliable = "Reliable"
	RankAverage  = "Average"
	RankRisky    = "Risky"
)

// User represents a platform user: a worker or a contractor.
type User struct {
	ID           string   `bson:"id" json:"id"`
	Name         string   `bson:"name" json:"name"`
	Email        string   `bson:"email" json:"email"`
	PasswordHash string   `bson:"passwordHash" json:"-"`
	PhoneNumber  string   `bson:"phoneNumber" json:"phoneNumber,omitempty"`
	Role         string   `bson:"role" json:"role"` // "worker" or "contractor"
	Address      string   `bson:"address" json:"address,omitempty"`
	LocationGeo  GeoPoint `bson:"locationGeo" json:"locationGeo"`

	// Worker-only fields.
	Skills        []string `bson:"skills,omitempty" json:"skills,omitempty"`
	TrustScore    int      `bson:"trustScore" json:"trustScore"`
	RankLabel     string   `bson:"rankLabel" json:"rankLabel"`
	AverageRating float64  `bson:"averageRating" json:"averageRating"`

	FCMToken  string    `bson:"fcmToken" json:"-"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// IsWorker reports whether the user holds the worker role.
func (u *User) IsWorker() bool { return u.Role == RoleWorker }

// IsContractor reports whether the user holds the contractor role.
func (u *User) IsContractor() bool { return u.Role == RoleContractor }

// WorkerProfile is the public projection of a worker returned by search.
type WorkerProfile struct {
	ID            string   `bson:"id" json:"id"`
	Name          string   `bson:"name" json:"name"`
	Skills        []string `bson:"skills" json:"skills"`
	TrustScore    int      `bson:"trustScore" json:"trustScore"`
	RankLabel     string   `bson:"rankLabel" json:"rankLabel"`
	AverageRating float64  `bson:"averageRating" json:"averageRating"`
	Address       string   `bson:"address" json:"address,omitempty"`
	LocationGeo   GeoPoint `bson:"locationGeo" json:"locationGeo"`
	Distance      float64  `bson:"distance,omitempty" json:"distanceMeters,omitempty"`
}
