// Package dto holds the response shapes returned by the REST API.
package dto

import "github.com/yeojiphap/choki/internal/server/models"

// UserResponse is the public view of a user. InviteCode and FamilyID are
// nil when the user has not joined a family yet.
type UserResponse struct {
	UserID       int64       `json:"userId"`
	Nickname     string      `json:"nickname"`
	Address      string      `json:"address"`
	Name         string      `json:"name"`
	Tel          string      `json:"tel"`
	Role         models.Role `json:"role"`
	InviteCode   *string     `json:"inviteCode"`
	FamilyID     *int64      `json:"familyId"`
	Level        int         `json:"level"`
	Exp          int         `json:"exp"`
	IsLevelUp    bool        `json:"isLevelUp"`
	MainAnimalID *int64      `json:"mainAnimalId"`
	Animals      []int64     `json:"animals"`
}

// NewUserResponse assembles the response for user. Animals lists the animal
// id of each collected entry in the order given.
func NewUserResponse(user *models.User, collected []*models.Collected, isLevelUp bool) UserResponse {
	resp := UserResponse{
		UserID:    user.ID,
		Nickname:  user.Nickname,
		Address:   user.Address,
		Name:      user.Name,
		Tel:       user.Tel,
		Role:      user.Role,
		Level:     user.Level,
		Exp:       user.Exp,
		IsLevelUp: isLevelUp,
		Animals:   make([]int64, 0, len(collected)),
	}

	if user.Family.Valid {
		code, id := user.Family.V.InviteCode, user.Family.V.ID
		resp.InviteCode = &code
		resp.FamilyID = &id
	}
	if user.MainAnimalID.Valid {
		animal := user.MainAnimalID.V
		resp.MainAnimalID = &animal
	}
	for _, c := range collected {
		resp.Animals = append(resp.Animals, c.AnimalID)
	}

	return resp
}

// InviteCodeResponse carries a family's invite code.
type InviteCodeResponse struct {
	InviteCode string `json:"inviteCode"`
}

// MissionResponse is the public view of a mission.
type MissionResponse struct {
	MissionID int64                `json:"missionId"`
	UserID    int64                `json:"userId"`
	Title     string               `json:"title"`
	Content   string               `json:"content"`
	Status    models.MissionStatus `json:"status"`
}

func NewMissionResponses(missions []*models.Mission) []MissionResponse {
	out := make([]MissionResponse, 0, len(missions))
	for _, m := range missions {
		out = append(out, MissionResponse{
			MissionID: m.ID,
			UserID:    m.UserID,
			Title:     m.Title,
			Content:   m.Content,
			Status:    m.Status,
		})
	}
	return out
}
