package model

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"reportd/internal/report/schema"
)

type Ability struct {
	Meta        `bson:",inline"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	CompanyID   primitive.ObjectID `bson:"companyId" json:"companyId"`
	Status      int                `bson:"status" json:"status"`
}

const AbilitiesCollection = "abilities"

var AbilitySchema = schema.New("ability",
	schema.Rule{Field: "name", Kind: schema.String, Required: true},
	schema.Rule{Field: "description", Kind: schema.String},
	schema.Rule{Field: "companyId", Kind: schema.ObjectID, Required: true},
	schema.Rule{Field: "status", Kind: schema.Int, Required: true, Enum: []int{AbilityActive, AbilityDeleted}},
)
