package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Owner is the denormalized view of the profile's user, populated on reads
// only; the document stores just the ObjectID reference.
type Owner struct {
	ID   primitive.ObjectID `json:"_id"`
	Name string             `json:"name"`
}

// Experience is an addressable entry in the profile's most-recent-first
// experience list.
type Experience struct {
	ID          primitive.ObjectID `bson:"_id" json:"_id"`
	Title       string             `bson:"title" json:"title"`
	Company     string             `bson:"company" json:"company"`
	Location    string             `bson:"location,omitempty" json:"location,omitempty"`
	From        string             `bson:"from" json:"from"`
	To          string             `bson:"to,omitempty" json:"to,omitempty"`
	Current     bool               `bson:"current" json:"current"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
}

// Education mirrors Experience for schooling history.
type Education struct {
	ID           primitive.ObjectID `bson:"_id" json:"_id"`
	School       string             `bson:"school" json:"school"`
	Degree       string             `bson:"degree" json:"degree"`
	FieldOfStudy string             `bson:"fieldofstudy" json:"fieldofstudy"`
	From         string             `bson:"from" json:"from"`
	To           string             `bson:"to,omitempty" json:"to,omitempty"`
	Current      bool               `bson:"current" json:"current"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
}

// Social holds the per-platform links, each canonicalized to https form or
// absent.
type Social struct {
	Youtube   string `bson:"youtube,omitempty" json:"youtube,omitempty"`
	Twitter   string `bson:"twitter,omitempty" json:"twitter,omitempty"`
	Facebook  string `bson:"facebook,omitempty" json:"facebook,omitempty"`
	Linkedin  string `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
	Instagram string `bson:"instagram,omitempty" json:"instagram,omitempty"`
	Github    string `bson:"github,omitempty" json:"github,omitempty"`
}

// Profile is the career aggregate, one document per user (unique index on the
// user reference).
type Profile struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID         primitive.ObjectID `bson:"user" json:"-"`
	User           *Owner             `bson:"-" json:"user,omitempty"`
	Company        string             `bson:"company,omitempty" json:"company,omitempty"`
	Website        string             `bson:"website,omitempty" json:"website,omitempty"`
	Location       string             `bson:"location,omitempty" json:"location,omitempty"`
	Status         string             `bson:"status" json:"status"`
	Skills         []string           `bson:"skills" json:"skills"`
	Bio            string             `bson:"bio,omitempty" json:"bio,omitempty"`
	GithubUsername string             `bson:"githubusername,omitempty" json:"githubusername,omitempty"`
	Experience     []Experience       `bson:"experience" json:"experience"`
	Education      []Education        `bson:"education" json:"education"`
	Social         Social             `bson:"social" json:"social"`
	ProfilePic     string             `bson:"profilepic,omitempty" json:"profilepic,omitempty"`
	Date           time.Time          `bson:"date" json:"date"`
}
