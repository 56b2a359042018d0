package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"reportd/internal/report/model"
	"reportd/internal/report/repository"
	"reportd/internal/report/util"
)

// AddUser invites a new member into the caller's company. The caller can
// only hand out roles weaker than their own; the invitee stays inactive
// until the mailed verification link is used.
func (s *Service) AddUser(ctx context.Context, caller Caller, req *model.AddUserReq) (*model.User, error) {
	creator, err := s.Repos.Users.FindOne(ctx, bson.M{"_id": caller.UserID, "companyId": caller.CompanyID})
	if err != nil {
		return nil, err
	}
	if req.Role <= creator.Role {
		return nil, forbidden("You can not create a user with a role equal or higher than yours!")
	}

	if _, err := s.Repos.Users.FindOne(ctx, bson.M{"email": req.Email}); err == nil {
		return nil, dataConflict("That email address is already in use by another account!")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if err := s.checkAbilities(ctx, caller.CompanyID, req.AbilityIDs); err != nil {
		return nil, err
	}

	user, err := s.Repos.Users.InsertOne(ctx, &model.User{
		Name:          req.Name,
		Surname:       req.Surname,
		Email:         req.Email,
		EmailVerified: false,
		CompanyID:     caller.CompanyID,
		Role:          req.Role,
		Status:        model.UserInactive,
		Rate:          req.Rate,
		Abilities:     req.AbilityIDs,
	})
	if err != nil {
		return nil, err
	}

	if err := s.sendVerificationMail(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// AddAbility creates a company ability. Names are unique among the
// non-deleted abilities of the company.
func (s *Service) AddAbility(ctx context.Context, caller Caller, req *model.AddAbilityReq) (*model.Ability, error) {
	existing, err := s.Repos.Abilities.Count(ctx, bson.M{"name": req.Name, "companyId": caller.CompanyID})
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, badRequest("Ability with this name already exist!")
	}

	return s.Repos.Abilities.InsertOne(ctx, &model.Ability{
		Name:        req.Name,
		Description: req.Description,
		CompanyID:   caller.CompanyID,
		Status:      model.AbilityActive,
	})
}

// AddProject creates a project with its staffed abilities. Every staffed
// ability must exist in the company and its period must fit inside the
// project period.
func (s *Service) AddProject(ctx context.Context, caller Caller, req *model.AddProjectReq) (*model.Project, error) {
	if util.IsSameOrAfter(req.ParsedSince, req.ParsedTo) {
		return nil, badRequest("Project can not end before it starts!")
	}

	abilityIDs := make([]primitive.ObjectID, 0, len(req.ParsedAbls))
	for _, abl := range req.ParsedAbls {
		if !util.IsInRangeWithSame(req.ParsedSince, req.ParsedTo, abl.Since, abl.To) {
			return nil, badRequest("Ability period must be within the project period!")
		}
		if util.IsSameOrAfter(abl.Since, abl.To) {
			return nil, badRequest("Ability period can not end before it starts!")
		}
		abilityIDs = append(abilityIDs, abl.AbilityID)
	}

	existing, err := s.Repos.Projects.Count(ctx, bson.M{"name": req.Name, "companyId": caller.CompanyID})
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, badRequest("Project with this name already exist!")
	}

	if err := s.checkAbilities(ctx, caller.CompanyID, abilityIDs); err != nil {
		return nil, err
	}

	return s.Repos.Projects.InsertOne(ctx, &model.Project{
		Name:        req.Name,
		Description: req.Description,
		CompanyID:   caller.CompanyID,
		CreatorID:   caller.UserID,
		Status:      model.ProjectActive,
		Since:       req.ParsedSince,
		To:          req.ParsedTo,
		Abilities:   req.ParsedAbls,
	})
}

// AddActivity reports one user's assignment of an ability to a project. The
// user must hold the ability, the project must staff it, and the reported
// period must fit inside the staffed period.
func (s *Service) AddActivity(ctx context.Context, caller Caller, req *model.AddActivityReq) (*model.Activity, error) {
	existing, err := s.Repos.Activities.Count(ctx, bson.M{
		"companyId": caller.CompanyID,
		"projectId": req.ParsedProjectID,
		"userId":    req.ParsedUserID,
		"abilityId": req.ParsedAbilityID,
	})
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, dataConflict("This activity already exist!")
	}

	user, err := s.Repos.Users.FindOne(ctx, bson.M{"_id": req.ParsedUserID, "companyId": caller.CompanyID})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, badRequest("You have wrong user!")
	}
	if err != nil {
		return nil, err
	}

	if _, err := s.Repos.Abilities.FindOne(ctx, bson.M{"_id": req.ParsedAbilityID, "companyId": caller.CompanyID}); errors.Is(err, repository.ErrNotFound) {
		return nil, badRequest("You have wrong ability!")
	} else if err != nil {
		return nil, err
	}

	project, err := s.Repos.Projects.FindOne(ctx, bson.M{"_id": req.ParsedProjectID, "companyId": caller.CompanyID})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, badRequest("You have wrong project!")
	}
	if err != nil {
		return nil, err
	}

	holds := false
	for _, id := range user.Abilities {
		if id == req.ParsedAbilityID {
			holds = true
			break
		}
	}
	if !holds {
		return nil, badRequest("User does not have this ability!")
	}

	var staffed *model.ProjectAbility
	for i := range project.Abilities {
		if project.Abilities[i].AbilityID == req.ParsedAbilityID {
			staffed = &project.Abilities[i]
			break
		}
	}
	if staffed == nil {
		return nil, badRequest("Project does not have this ability!")
	}

	if !util.IsInRangeWithSame(staffed.Since, staffed.To, req.ParsedSince, req.ParsedTo) {
		return nil, badRequest("Activity period must be within the project ability period!")
	}

	return s.Repos.Activities.InsertOne(ctx, &model.Activity{
		CompanyID: caller.CompanyID,
		CreatorID: caller.UserID,
		ProjectID: req.ParsedProjectID,
		UserID:    req.ParsedUserID,
		AbilityID: req.ParsedAbilityID,
		Status:    model.ActivityActive,
		Since:     req.ParsedSince,
		To:        req.ParsedTo,
	})
}

func (s *Service) checkAbilities(ctx context.Context, companyID primitive.ObjectID, ids []primitive.ObjectID) error {
	if len(ids) == 0 {
		return nil
	}
	unique := make(map[primitive.ObjectID]struct{}, len(ids))
	distinct := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if _, seen := unique[id]; seen {
			continue
		}
		unique[id] = struct{}{}
		distinct = append(distinct, id)
	}

	count, err := s.Repos.Abilities.Count(ctx, bson.M{
		"_id":       bson.M{"$in": distinct},
		"companyId": companyID,
	})
	if err != nil {
		return err
	}
	if count != int64(len(distinct)) {
		return badRequest("You have wrong ability!")
	}
	return nil
}
