package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"reportd/internal/report/schema"
)

// Activity is one user's reported assignment of an ability to a project for
// a date range.
type Activity struct {
	Meta      `bson:",inline"`
	CompanyID primitive.ObjectID `bson:"companyId" json:"companyId"`
	CreatorID primitive.ObjectID `bson:"creatorId" json:"creatorId"`
	ProjectID primitive.ObjectID `bson:"projectId" json:"projectId"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	AbilityID primitive.ObjectID `bson:"abilityId" json:"abilityId"`
	Status    int                `bson:"status" json:"status"`
	Since     time.Time          `bson:"since" json:"since"`
	To        time.Time          `bson:"to" json:"to"`
}

const ActivitiesCollection = "activities"

var ActivitySchema = schema.New("activity",
	schema.Rule{Field: "companyId", Kind: schema.ObjectID, Required: true},
	schema.Rule{Field: "creatorId", Kind: schema.ObjectID, Required: true},
	schema.Rule{Field: "projectId", Kind: schema.ObjectID, Required: true},
	schema.Rule{Field: "userId", Kind: schema.ObjectID, Required: true},
	schema.Rule{Field: "abilityId", Kind: schema.ObjectID, Required: true},
	schema.Rule{Field: "status", Kind: schema.Int, Required: true, Enum: []int{ActivityActive, ActivityDeleted}},
	schema.Rule{Field: "since", Kind: schema.Date, Required: true},
	schema.Rule{Field: "to", Kind: schema.Date, Required: true},
)
