package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"reportd/internal/report/util"
)

// Request DTOs for the HTTP boundary. Each carries validator tags and a
// Validate method that normalizes input before checking it, so handlers can
// bind, validate and hand a clean request to the service.

type RegisterReq struct {
	Email       string `json:"email" validate:"required,email"`
	Name        string `json:"name" validate:"required"`
	Surname     string `json:"surname" validate:"required"`
	Password    string `json:"password" validate:"required,min=8"`
	CompanyName string `json:"companyName" validate:"required"`
}

func (r *RegisterReq) Validate() error {
	r.Email = util.NormalizeEmailAddress(r.Email)
	r.Name = util.NormalizeName(r.Name)
	r.Surname = util.NormalizeName(r.Surname)
	r.CompanyName = util.NormalizeName(r.CompanyName)

	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	return nil
}

type LoginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginReq) Validate() error {
	r.Email = util.NormalizeEmailAddress(r.Email)

	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	return nil
}

type AddUserReq struct {
	Email     string   `json:"email" validate:"required,email"`
	Name      string   `json:"name" validate:"required"`
	Surname   string   `json:"surname" validate:"required"`
	Rate      float64  `json:"rate" validate:"min=0"`
	Role      int      `json:"role"`
	Abilities []string `json:"abilities" validate:"required"`

	AbilityIDs []primitive.ObjectID `json:"-"`
}

func (r *AddUserReq) Validate() error {
	r.Email = util.NormalizeEmailAddress(r.Email)
	r.Name = util.NormalizeName(r.Name)
	r.Surname = util.NormalizeName(r.Surname)

	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}

	if r.Role != RoleOwner && r.Role != RoleAdmin && r.Role != RoleUser {
		return &RequestError{
			Message: "role must be a valid enum value",
			Fields:  map[string]string{"role": "role must be a valid enum value"},
		}
	}

	r.AbilityIDs = make([]primitive.ObjectID, 0, len(r.Abilities))
	for _, raw := range r.Abilities {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return &RequestError{
				Message: "abilities must be mongodb ids",
				Fields:  map[string]string{"abilities": "abilities must be mongodb ids"},
			}
		}
		r.AbilityIDs = append(r.AbilityIDs, id)
	}
	return nil
}

type AddAbilityReq struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

func (r *AddAbilityReq) Validate() error {
	r.Name = util.NormalizeName(r.Name)
	r.Description = util.NormalizeName(r.Description)

	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	return nil
}

type AddProjectAbilityReq struct {
	AbilityID string  `json:"abilityId" validate:"required"`
	Hours     int     `json:"hours" validate:"required,min=1,max=8"`
	Rate      float64 `json:"rate" validate:"min=0"`
	Since     string  `json:"since" validate:"required"`
	To        string  `json:"to" validate:"required"`
}

type AddProjectReq struct {
	Name        string                 `json:"name" validate:"required"`
	Description string                 `json:"description"`
	Since       string                 `json:"since" validate:"required"`
	To          string                 `json:"to" validate:"required"`
	Abilities   []AddProjectAbilityReq `json:"abilities" validate:"required,dive"`

	ParsedSince time.Time        `json:"-"`
	ParsedTo    time.Time        `json:"-"`
	ParsedAbls  []ProjectAbility `json:"-"`
}

func (r *AddProjectReq) Validate() error {
	r.Name = util.NormalizeName(r.Name)
	r.Description = util.NormalizeName(r.Description)

	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}

	since, err := parseDate(r.Since)
	if err != nil {
		return dateError("since")
	}
	to, err := parseDate(r.To)
	if err != nil {
		return dateError("to")
	}
	r.ParsedSince = util.StartOfDay(since)
	r.ParsedTo = util.EndOfDay(to)

	r.ParsedAbls = make([]ProjectAbility, 0, len(r.Abilities))
	for _, raw := range r.Abilities {
		abilityID, err := primitive.ObjectIDFromHex(raw.AbilityID)
		if err != nil {
			return &RequestError{
				Message: "abilities.abilityId must be a mongodb id",
				Fields:  map[string]string{"abilities": "abilities.abilityId must be a mongodb id"},
			}
		}
		ablSince, err := parseDate(raw.Since)
		if err != nil {
			return dateError("abilities.since")
		}
		ablTo, err := parseDate(raw.To)
		if err != nil {
			return dateError("abilities.to")
		}
		r.ParsedAbls = append(r.ParsedAbls, ProjectAbility{
			AbilityID: abilityID,
			Hours:     raw.Hours,
			Rate:      raw.Rate,
			Since:     util.StartOfDay(ablSince),
			To:        util.EndOfDay(ablTo),
		})
	}
	return nil
}

type AddActivityReq struct {
	ProjectID string `json:"projectId" validate:"required"`
	UserID    string `json:"userId" validate:"required"`
	AbilityID string `json:"abilityId" validate:"required"`
	Since     string `json:"since" validate:"required"`
	To        string `json:"to" validate:"required"`

	ParsedProjectID primitive.ObjectID `json:"-"`
	ParsedUserID    primitive.ObjectID `json:"-"`
	ParsedAbilityID primitive.ObjectID `json:"-"`
	ParsedSince     time.Time          `json:"-"`
	ParsedTo        time.Time          `json:"-"`
}

func (r *AddActivityReq) Validate() error {
	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}

	ids := map[string]*primitive.ObjectID{
		"projectId": &r.ParsedProjectID,
		"userId":    &r.ParsedUserID,
		"abilityId": &r.ParsedAbilityID,
	}
	raw := map[string]string{
		"projectId": r.ProjectID,
		"userId":    r.UserID,
		"abilityId": r.AbilityID,
	}
	for field, target := range ids {
		id, err := primitive.ObjectIDFromHex(raw[field])
		if err != nil {
			return &RequestError{
				Message: field + " must be a mongodb id",
				Fields:  map[string]string{field: field + " must be a mongodb id"},
			}
		}
		*target = id
	}

	since, err := parseDate(r.Since)
	if err != nil {
		return dateError("since")
	}
	to, err := parseDate(r.To)
	if err != nil {
		return dateError("to")
	}
	r.ParsedSince = util.StartOfDay(since)
	r.ParsedTo = util.EndOfDay(to)
	return nil
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

func dateError(field string) *RequestError {
	return &RequestError{
		Message: field + " must be a date string",
		Fields:  map[string]string{field: field + " must be a date string"},
	}
}
