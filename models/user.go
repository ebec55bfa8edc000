package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	Phone        string             `bson:"phone,omitempty" json:"phone,omitempty"`
	CountryCode  string             `bson:"country_code,omitempty" json:"country_code,omitempty"`
	PasswordHash string             `bson:"password" json:"-"`
	DisplayName  string             `bson:"display_name" json:"display_name"`
	AvatarURL    string             `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
	IsVerified   bool               `bson:"is_verified" json:"is_verified"`
	Location     *GeoPoint          `bson:"location,omitempty" json:"location,omitempty"`
	District     string             `bson:"district,omitempty" json:"district,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// UserSummary is the denormalized owner/author view embedded in post and
// comment responses.
type UserSummary struct {
	ID          primitive.ObjectID `json:"id"`
	DisplayName string             `json:"display_name"`
	AvatarURL   string             `json:"avatar_url,omitempty"`
	IsVerified  bool               `json:"is_verified"`
}

// Summary projects the fields exposed alongside posts and comments.
func (u *User) Summary() *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
		IsVerified:  u.IsVerified,
	}
}
