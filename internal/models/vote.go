package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ChoiceYes = "yes"
	ChoiceNo  = "no"
)

func ValidChoice(choice string) bool {
	return choice == ChoiceYes || choice == ChoiceNo
}

// Vote is write-once: the (surveyId, userEmail) pair is unique and a vote is
// never mutated or deleted after insert.
type Vote struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	SurveyID  string             `bson:"surveyId" json:"surveyId"`
	UserEmail string             `bson:"userEmail" json:"userEmail"`
	Choice    string             `bson:"choice" json:"choice"`
	CastAt    time.Time          `bson:"castAt" json:"castAt"`
}
