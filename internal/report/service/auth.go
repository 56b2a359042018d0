package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"reportd/internal/report/auth"
	"reportd/internal/report/model"
	"reportd/internal/report/repository"
	"reportd/internal/report/util"
)

// Register creates a new inactive company with its owner user and mails a
// verification link. Both accounts stay inactive until the email is
// confirmed.
func (s *Service) Register(ctx context.Context, req *model.RegisterReq) (*MeResponse, error) {
	if _, err := s.Repos.Users.FindOne(ctx, bson.M{"email": req.Email}); err == nil {
		return nil, dataConflict("That email address is already in use by another account!")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if _, err := s.Repos.Companies.FindOne(ctx, bson.M{"name": req.CompanyName}); err == nil {
		return nil, dataConflict("That company name is already in use by another account!")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	company, err := s.Repos.Companies.InsertOne(ctx, &model.Company{
		Name:   req.CompanyName,
		Status: model.CompanyInactive,
	})
	if err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.Repos.Users.InsertOne(ctx, &model.User{
		Name:          req.Name,
		Surname:       req.Surname,
		Email:         req.Email,
		EmailVerified: false,
		Password:      hash,
		CompanyID:     company.ID,
		Role:          model.RoleOwner,
		Status:        model.UserInactive,
		Rate:          0,
		Abilities:     []primitive.ObjectID{},
	})
	if err != nil {
		return nil, err
	}

	if err := s.sendVerificationMail(ctx, user); err != nil {
		return nil, err
	}

	return formatMe(user, company, ""), nil
}

// Login authenticates by email and password. The same message covers an
// unknown email and a wrong password.
func (s *Service) Login(ctx context.Context, req *model.LoginReq) (*MeResponse, error) {
	me, err := s.Repos.Users.FindOne(ctx, bson.M{"email": req.Email})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, badRequest("Email or password invalid!")
	}
	if err != nil {
		return nil, err
	}

	if !auth.CheckPassword(me.Password, req.Password) {
		return nil, badRequest("Email or password invalid!")
	}

	if me.Status > model.UserInactive {
		return nil, dataConflict("Account deleted or inactive! Please contact your admin or support!")
	}

	if !me.EmailVerified {
		return nil, dataConflict("Email not verified! Please check your email or resend verification link!")
	}

	company, err := s.Repos.Companies.FindOne(ctx, bson.M{"_id": me.CompanyID})
	if err != nil {
		return nil, err
	}

	accessToken, err := s.Tokens.Generate(me)
	if err != nil {
		return nil, err
	}

	return formatMe(me, company, accessToken), nil
}

// VerifyEmail redeems an emailed token: activates the user, and for admins
// and owners their company too. The token is removed once used.
func (s *Service) VerifyEmail(ctx context.Context, token string) (*MeResponse, error) {
	verification, err := s.Repos.Verifications.FindOne(ctx, bson.M{
		"token": token,
		"type":  model.VerificationVerifyEmail,
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, badRequest("Link expired or is invalid! Try resend link!")
	}
	if err != nil {
		return nil, err
	}

	user, err := s.Repos.Users.FindOne(ctx, bson.M{"_id": verification.CreatorID})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("User not found!")
	}
	if err != nil {
		return nil, err
	}

	company, err := s.Repos.Companies.FindOne(ctx, bson.M{"_id": user.CompanyID})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("Company not found!")
	}
	if err != nil {
		return nil, err
	}

	if user.EmailVerified {
		return nil, badRequest("Email already verified!")
	}

	next := *user
	next.EmailVerified = true
	next.Status = model.UserActive
	updatedUser, err := s.Repos.Users.Update(ctx, &next)
	if err != nil {
		return nil, err
	}

	if next.Role <= model.RoleAdmin {
		nextCompany := *company
		nextCompany.Status = model.CompanyActive
		company, err = s.Repos.Companies.Update(ctx, &nextCompany)
		if err != nil {
			return nil, err
		}
	}

	if err := s.Repos.Verifications.Remove(ctx, bson.M{"_id": verification.ID}); err != nil {
		return nil, err
	}

	accessToken, err := s.Tokens.Generate(updatedUser)
	if err != nil {
		return nil, err
	}

	return formatMe(updatedUser, company, accessToken), nil
}

func (s *Service) sendVerificationMail(ctx context.Context, user *model.User) error {
	token, err := randomToken()
	if err != nil {
		return err
	}

	if _, err := s.Repos.Verifications.InsertOne(ctx, &model.Verification{
		CreatedAt: time.Now().UTC(),
		CreatorID: user.ID,
		Type:      model.VerificationVerifyEmail,
		Token:     token,
	}); err != nil {
		return err
	}

	err = s.Mailer.Send(ctx, user.Email,
		"Confirm email from Report service",
		fmt.Sprintf("%s/api/verify/email/%s", s.RootURL, token),
	)
	if err != nil {
		util.GetLogger().Error("cannot send email", "to", user.Email, "error", err)
		return err
	}
	return nil
}

func randomToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
