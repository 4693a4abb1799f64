package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/mamalink/mamalink-backend/internal/dto"
	"github.com/mamalink/mamalink-backend/internal/models"
	"github.com/mamalink/mamalink-backend/internal/repository"
)

type ProfileService struct {
	profiles   *repository.ProfileRepository
	moderation *ModerationService
}

func NewProfileService(profiles *repository.ProfileRepository, moderation *ModerationService) *ProfileService {
	return &ProfileService{profiles: profiles, moderation: moderation}
}

func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	return s.profiles.GetByUserID(ctx, userID)
}

// Update patches only the fields present in the request.
func (s *ProfileService) Update(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*models.Profile, error) {
	updates := map[string]interface{}{}

	if req.DisplayName != nil {
		if *req.DisplayName == "" {
			return nil, NewValidationError("display_name cannot be empty")
		}
		if err := s.moderation.CheckContent(*req.DisplayName); err != nil {
			return nil, err
		}
		updates["display_name"] = *req.DisplayName
	}
	if req.Bio != nil {
		if err := s.moderation.CheckContent(*req.Bio); err != nil {
			return nil, err
		}
		updates["bio"] = *req.Bio
	}
	if req.AvatarURL != nil {
		updates["avatar_url"] = *req.AvatarURL
	}
	if req.Area != nil {
		updates["area"] = *req.Area
	}
	if req.Interests != nil {
		updates["interests"] = []byte(*req.Interests)
	}
	if req.ChildrenInfo != nil {
		updates["children_info"] = []byte(*req.ChildrenInfo)
	}
	if req.ShareLocation != nil {
		updates["share_location"] = *req.ShareLocation
	}
	if req.Latitude != nil {
		updates["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		updates["longitude"] = *req.Longitude
	}

	if len(updates) > 0 {
		if err := s.profiles.Update(ctx, userID, updates); err != nil {
			return nil, err
		}
	}
	return s.profiles.GetByUserID(ctx, userID)
}

// Nearby returns profiles that opted into location sharing.
func (s *ProfileService) Nearby(ctx context.Context) ([]models.Profile, error) {
	return s.profiles.ListSharingLocation(ctx)
}
