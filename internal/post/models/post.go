package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Like records one user's like. The likes list holds at most one entry per
// user, most recent first.
type Like struct {
	User primitive.ObjectID `bson:"user" json:"user"`
}

// Comment is an addressable entry in the post's most-recent-first comment
// list. The name is a snapshot of the commenter's display name at write time.
type Comment struct {
	ID   primitive.ObjectID `bson:"_id" json:"_id"`
	User primitive.ObjectID `bson:"user" json:"user"`
	Name string             `bson:"name" json:"name"`
	Text string             `bson:"text" json:"text"`
	Date time.Time          `bson:"date" json:"date"`
}

// Post is the engagement aggregate. The author's name is denormalized at
// creation and not kept in sync with later name changes.
type Post struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	User     primitive.ObjectID `bson:"user" json:"user"`
	Name     string             `bson:"name" json:"name"`
	Text     string             `bson:"text" json:"text"`
	Pic      string             `bson:"pic,omitempty" json:"pic,omitempty"`
	Date     time.Time          `bson:"date" json:"date"`
	Likes    []Like             `bson:"likes" json:"likes"`
	Comments []Comment          `bson:"comments" json:"comments"`
}

// LikedBy reports whether the user already has an entry in the likes list.
func (p *Post) LikedBy(userID primitive.ObjectID) bool {
	for _, like := range p.Likes {
		if like.User == userID {
			return true
		}
	}
	return false
}
