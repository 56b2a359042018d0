package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRegisterReqValidate(t *testing.T) {
	t.Run("normalizes before checking", func(t *testing.T) {
		req := RegisterReq{
			Email:       "  Jo.Smith@Example.COM ",
			Name:        "  Jo ",
			Surname:     " Smith ",
			Password:    "long enough",
			CompanyName: " Acme ",
		}
		require.NoError(t, req.Validate())
		assert.Equal(t, "jo.smith@example.com", req.Email)
		assert.Equal(t, "Jo", req.Name)
		assert.Equal(t, "Smith", req.Surname)
		assert.Equal(t, "Acme", req.CompanyName)
	})

	t.Run("collects field errors", func(t *testing.T) {
		req := RegisterReq{Email: "not-an-email", Password: "short"}
		err := req.Validate()
		var reqErr *RequestError
		require.ErrorAs(t, err, &reqErr)
		assert.Contains(t, reqErr.Fields, "Email")
		assert.Contains(t, reqErr.Fields, "Password")
		assert.Contains(t, reqErr.Fields, "Name")
	})
}

func TestLoginReqValidate(t *testing.T) {
	req := LoginReq{Email: " User@Example.com ", Password: "secret"}
	require.NoError(t, req.Validate())
	assert.Equal(t, "user@example.com", req.Email)

	bad := LoginReq{Email: "user@example.com"}
	assert.Error(t, bad.Validate())
}

func TestAddUserReqValidate(t *testing.T) {
	id := primitive.NewObjectID()

	t.Run("parses ability ids", func(t *testing.T) {
		req := AddUserReq{
			Email:     "new@example.com",
			Name:      "New",
			Surname:   "User",
			Role:      RoleUser,
			Abilities: []string{id.Hex()},
		}
		require.NoError(t, req.Validate())
		assert.Equal(t, []primitive.ObjectID{id}, req.AbilityIDs)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		req := AddUserReq{
			Email:     "new@example.com",
			Name:      "New",
			Surname:   "User",
			Role:      42,
			Abilities: []string{id.Hex()},
		}
		var reqErr *RequestError
		require.ErrorAs(t, req.Validate(), &reqErr)
		assert.Contains(t, reqErr.Fields, "role")
	})

	t.Run("rejects malformed ability id", func(t *testing.T) {
		req := AddUserReq{
			Email:     "new@example.com",
			Name:      "New",
			Surname:   "User",
			Role:      RoleUser,
			Abilities: []string{"nope"},
		}
		var reqErr *RequestError
		require.ErrorAs(t, req.Validate(), &reqErr)
		assert.Contains(t, reqErr.Fields, "abilities")
	})
}

func TestAddProjectReqValidate(t *testing.T) {
	abilityID := primitive.NewObjectID()

	valid := func() AddProjectReq {
		return AddProjectReq{
			Name:  "Rollout",
			Since: "2024-01-01",
			To:    "2024-06-30",
			Abilities: []AddProjectAbilityReq{{
				AbilityID: abilityID.Hex(),
				Hours:     6,
				Rate:      90,
				Since:     "2024-01-01",
				To:        "2024-03-31",
			}},
		}
	}

	t.Run("parses dates to day boundaries", func(t *testing.T) {
		req := valid()
		require.NoError(t, req.Validate())

		assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), req.ParsedSince)
		assert.Equal(t, time.Date(2024, 6, 30, 23, 59, 59, 999000000, time.UTC), req.ParsedTo)

		require.Len(t, req.ParsedAbls, 1)
		assert.Equal(t, abilityID, req.ParsedAbls[0].AbilityID)
		assert.Equal(t, 6, req.ParsedAbls[0].Hours)
	})

	t.Run("accepts rfc3339 timestamps", func(t *testing.T) {
		req := valid()
		req.Since = "2024-01-01T09:30:00Z"
		require.NoError(t, req.Validate())
		assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), req.ParsedSince)
	})

	t.Run("rejects unparseable dates", func(t *testing.T) {
		req := valid()
		req.To = "soonish"
		var reqErr *RequestError
		require.ErrorAs(t, req.Validate(), &reqErr)
		assert.Contains(t, reqErr.Fields, "to")
	})

	t.Run("rejects hours outside the day budget", func(t *testing.T) {
		req := valid()
		req.Abilities[0].Hours = 9
		assert.Error(t, req.Validate())
	})
}

func TestAddActivityReqValidate(t *testing.T) {
	projectID := primitive.NewObjectID()
	userID := primitive.NewObjectID()
	abilityID := primitive.NewObjectID()

	t.Run("parses all ids and dates", func(t *testing.T) {
		req := AddActivityReq{
			ProjectID: projectID.Hex(),
			UserID:    userID.Hex(),
			AbilityID: abilityID.Hex(),
			Since:     "2024-02-01",
			To:        "2024-02-28",
		}
		require.NoError(t, req.Validate())
		assert.Equal(t, projectID, req.ParsedProjectID)
		assert.Equal(t, userID, req.ParsedUserID)
		assert.Equal(t, abilityID, req.ParsedAbilityID)
		assert.True(t, req.ParsedSince.Before(req.ParsedTo))
	})

	t.Run("rejects malformed id", func(t *testing.T) {
		req := AddActivityReq{
			ProjectID: "nope",
			UserID:    userID.Hex(),
			AbilityID: abilityID.Hex(),
			Since:     "2024-02-01",
			To:        "2024-02-28",
		}
		var reqErr *RequestError
		require.ErrorAs(t, req.Validate(), &reqErr)
		assert.Contains(t, reqErr.Fields, "projectId")
	})
}
