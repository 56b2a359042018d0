package service

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"reportd/internal/report/model"
)

// MeUser is the caller's own record with the credentials and tenant linkage
// stripped out.
type MeUser struct {
	ID        primitive.ObjectID   `json:"_id"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
	History   []model.HistoryEntry `json:"history"`
	Name      string               `json:"name"`
	Surname   string               `json:"surname"`
	Email     string               `json:"email"`
	Role      int                  `json:"role"`
	Status    int                  `json:"status"`
	Rate      float64              `json:"rate"`
	Abilities []primitive.ObjectID `json:"abilities"`
}

type MeResponse struct {
	User        MeUser         `json:"user"`
	Company     *model.Company `json:"company"`
	AccessToken string         `json:"accessToken,omitempty"`
}

func formatMe(user *model.User, company *model.Company, accessToken string) *MeResponse {
	return &MeResponse{
		User: MeUser{
			ID:        user.ID,
			CreatedAt: user.CreatedAt,
			UpdatedAt: user.UpdatedAt,
			History:   user.History,
			Name:      user.Name,
			Surname:   user.Surname,
			Email:     user.Email,
			Role:      user.Role,
			Status:    user.Status,
			Rate:      user.Rate,
			Abilities: user.Abilities,
		},
		Company:     company,
		AccessToken: accessToken,
	}
}
