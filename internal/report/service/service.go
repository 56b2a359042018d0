package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"reportd/internal/report/auth"
	"reportd/internal/report/mail"
	"reportd/internal/report/model"
	"reportd/internal/report/repository"
)

// Caller identifies the authenticated user on company-scoped operations.
type Caller struct {
	UserID    primitive.ObjectID
	CompanyID primitive.ObjectID
}

type ReportService interface {
	Register(ctx context.Context, req *model.RegisterReq) (*MeResponse, error)
	Login(ctx context.Context, req *model.LoginReq) (*MeResponse, error)
	VerifyEmail(ctx context.Context, token string) (*MeResponse, error)
	AddUser(ctx context.Context, caller Caller, req *model.AddUserReq) (*model.User, error)
	AddAbility(ctx context.Context, caller Caller, req *model.AddAbilityReq) (*model.Ability, error)
	AddProject(ctx context.Context, caller Caller, req *model.AddProjectReq) (*model.Project, error)
	AddActivity(ctx context.Context, caller Caller, req *model.AddActivityReq) (*model.Activity, error)
}

type Service struct {
	Repos   *repository.Repositories
	Tokens  *auth.TokenManager
	Mailer  mail.Mailer
	RootURL string
}

func NewService(repos *repository.Repositories, tokens *auth.TokenManager, mailer mail.Mailer, rootURL string) *Service {
	return &Service{Repos: repos, Tokens: tokens, Mailer: mailer, RootURL: rootURL}
}
