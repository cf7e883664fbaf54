package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusDraft   = "draft"
	StatusPublish = "publish"
)

// Survey tallies (YesOption/NoOption) are owned by the voting pipeline and
// only ever move by atomic increments. Authoring updates must not touch them.
type Survey struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Category    string             `bson:"category" json:"category"`
	Deadline    string             `bson:"deadline" json:"deadline"`
	Status      string             `bson:"status" json:"status"`
	CreatedBy   string             `bson:"createdBy" json:"createdBy"`
	YesOption   int64              `bson:"yesOption" json:"yesOption"`
	NoOption    int64              `bson:"noOption" json:"noOption"`
	UpdatedOn   time.Time          `bson:"updatedOn" json:"updatedOn"`
}
