package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"reportd/internal/report/schema"
)

// ProjectAbility staffs one ability on a project for a date range, with the
// daily hour budget and the billing rate.
type ProjectAbility struct {
	AbilityID primitive.ObjectID `bson:"abilityId" json:"abilityId"`
	Hours     int                `bson:"hours" json:"hours"`
	Rate      float64            `bson:"rate" json:"rate"`
	Since     time.Time          `bson:"since" json:"since"`
	To        time.Time          `bson:"to" json:"to"`
}

type Project struct {
	Meta        `bson:",inline"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	CompanyID   primitive.ObjectID `bson:"companyId" json:"companyId"`
	CreatorID   primitive.ObjectID `bson:"creatorId" json:"creatorId"`
	Status      int                `bson:"status" json:"status"`
	Since       time.Time          `bson:"since" json:"since"`
	To          time.Time          `bson:"to" json:"to"`
	Abilities   []ProjectAbility   `bson:"abilities" json:"abilities"`
}

const ProjectsCollection = "projects"

var ProjectAbilitySchema = schema.New("projectAbility",
	schema.Rule{Field: "abilityId", Kind: schema.ObjectID, Required: true},
	schema.Rule{Field: "hours", Kind: schema.Int, Required: true, Min: floatPtr(1), Max: floatPtr(8)},
	schema.Rule{Field: "rate", Kind: schema.Number, Required: true, Min: floatPtr(0)},
	schema.Rule{Field: "since", Kind: schema.Date, Required: true},
	schema.Rule{Field: "to", Kind: schema.Date, Required: true},
)

var ProjectSchema = schema.New("project",
	schema.Rule{Field: "name", Kind: schema.String, Required: true},
	schema.Rule{Field: "description", Kind: schema.String},
	schema.Rule{Field: "companyId", Kind: schema.ObjectID, Required: true},
	schema.Rule{Field: "creatorId", Kind: schema.ObjectID, Required: true},
	schema.Rule{Field: "status", Kind: schema.Int, Required: true, Enum: []int{ProjectActive, ProjectDeleted}},
	schema.Rule{Field: "since", Kind: schema.Date, Required: true},
	schema.Rule{Field: "to", Kind: schema.Date, Required: true},
	schema.Rule{Field: "abilities", Kind: schema.Array, Required: true, Nested: ProjectAbilitySchema},
)
