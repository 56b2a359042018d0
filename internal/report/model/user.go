package model

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"reportd/internal/report/schema"
)

type User struct {
	Meta          `bson:",inline"`
	Name          string               `bson:"name" json:"name"`
	Surname       string               `bson:"surname" json:"surname"`
	Email         string               `bson:"email" json:"email"`
	EmailVerified bool                 `bson:"emailVerified" json:"emailVerified"`
	Password      string               `bson:"password" json:"password,omitempty"`
	CompanyID     primitive.ObjectID   `bson:"companyId" json:"companyId,omitempty"`
	Role          int                  `bson:"role" json:"role"`
	Status        int                  `bson:"status" json:"status"`
	Rate          float64              `bson:"rate" json:"rate"`
	Abilities     []primitive.ObjectID `bson:"abilities" json:"abilities"`
}

const UsersCollection = "users"

var UserSchema = schema.New("user",
	schema.Rule{Field: "name", Kind: schema.String, Required: true},
	schema.Rule{Field: "surname", Kind: schema.String, Required: true},
	schema.Rule{Field: "email", Kind: schema.String, Required: true},
	schema.Rule{Field: "emailVerified", Kind: schema.Bool, Required: true},
	schema.Rule{Field: "password", Kind: schema.String},
	schema.Rule{Field: "companyId", Kind: schema.ObjectID, Required: true},
	schema.Rule{Field: "role", Kind: schema.Int, Required: true, Enum: []int{RoleOwner, RoleAdmin, RoleUser}},
	schema.Rule{Field: "status", Kind: schema.Int, Required: true, Enum: []int{UserActive, UserInactive, UserDeleted}},
	schema.Rule{Field: "rate", Kind: schema.Number, Required: true, Min: floatPtr(0)},
	schema.Rule{Field: "abilities", Kind: schema.Array, Required: true, Elem: &schema.Rule{Kind: schema.ObjectID, Required: true}},
)

func floatPtr(f float64) *float64 { return &f }
