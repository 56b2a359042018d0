package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"reportd/internal/report/model"
)

// Per-entity instantiations of the versioned collection.
type (
	UserCollection     = Collection[model.User, *model.User]
	CompanyCollection  = Collection[model.Company, *model.Company]
	AbilityCollection  = Collection[model.Ability, *model.Ability]
	ProjectCollection  = Collection[model.Project, *model.Project]
	ActivityCollection = Collection[model.Activity, *model.Activity]
)

// Repositories bundles one collection per entity type over a shared
// database handle. The handle is injected; the composition root owns the
// connect/disconnect lifecycle.
type Repositories struct {
	Users         *UserCollection
	Companies     *CompanyCollection
	Abilities     *AbilityCollection
	Projects      *ProjectCollection
	Activities    *ActivityCollection
	Verifications *VerificationRepository
}

func NewRepositories(db Database) *Repositories {
	return &Repositories{
		Users: NewCollection[model.User](db.Collection(model.UsersCollection), Config{
			Schema:        model.UserSchema,
			DeletedStatus: model.UserDeleted,
			RenameField:   "email",
		}),
		Companies: NewCollection[model.Company](db.Collection(model.CompaniesCollection), Config{
			Schema:        model.CompanySchema,
			DeletedStatus: model.CompanyDeleted,
			RenameField:   "name",
		}),
		Abilities: NewCollection[model.Ability](db.Collection(model.AbilitiesCollection), Config{
			Schema:        model.AbilitySchema,
			DeletedStatus: model.AbilityDeleted,
			RenameField:   "name",
		}),
		Projects: NewCollection[model.Project](db.Collection(model.ProjectsCollection), Config{
			Schema:        model.ProjectSchema,
			DeletedStatus: model.ProjectDeleted,
			RenameField:   "name",
		}),
		Activities: NewCollection[model.Activity](db.Collection(model.ActivitiesCollection), Config{
			Schema:        model.ActivitySchema,
			DeletedStatus: model.ActivityDeleted,
			// activities have no uniqueness-bearing display field
		}),
		Verifications: NewVerificationRepository(db.Collection(model.VerificationsCollection)),
	}
}

// EnsureIndexes bootstraps the store-side constraints: unique verification
// tokens with TTL expiry, and a unique email over non-deleted users (soft
// deleted rows keep their rewritten email, so the partial filter is a
// second fence, not the primary one).
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	verifications := db.Collection(model.VerificationsCollection)
	_, err := verifications.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "token", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_token"),
		},
		{
			Keys: bson.D{{Key: "createdAt", Value: 1}},
			Options: options.Index().
				SetExpireAfterSeconds(model.VerificationLifetimeSeconds).
				SetName("ttl_created_at"),
		},
	})
	if err != nil {
		return err
	}

	users := db.Collection(model.UsersCollection)
	_, err = users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetName("uniq_active_email").
			SetPartialFilterExpression(bson.M{
				"status": bson.M{"$lt": model.UserDeleted},
			}),
	})
	return err
}
