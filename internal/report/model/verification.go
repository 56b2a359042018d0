package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"reportd/internal/report/schema"
)

// Verification is a short-lived email token. Unlike the audited entities it
// carries no history and is physically removed once used; a TTL index on
// createdAt reaps the rest.
type Verification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	Token     string             `bson:"token" json:"token"`
	Type      string             `bson:"type" json:"type"`
	CreatorID primitive.ObjectID `bson:"creatorId" json:"creatorId"`
}

const VerificationsCollection = "verifications"

var VerificationSchema = schema.New("verification",
	schema.Rule{Field: "createdAt", Kind: schema.Date, Required: true},
	schema.Rule{Field: "token", Kind: schema.String, Required: true},
	schema.Rule{Field: "type", Kind: schema.String, Required: true},
	schema.Rule{Field: "creatorId", Kind: schema.ObjectID, Required: true},
)
