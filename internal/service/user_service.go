package service

import (
	"errors"

	"mentorhub_backend/internal/model"
	"mentorhub_backend/internal/repository"
	"mentorhub_backend/internal/util"

	"gorm.io/gorm"
)

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

func (s *UserService) GetUserByID(id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ProfileUpdate carries the editable profile fields. Nil means "leave
// unchanged"; role, email and password are never touched here.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Bio       *string
	AvatarURL *string
	ZoomLink  *string
}

func (s *UserService) UpdateProfile(userID uint, update ProfileUpdate) (*model.User, error) {
	fields := map[string]interface{}{}
	if update.FirstName != nil {
		fields["first_name"] = *update.FirstName
	}
	if update.LastName != nil {
		fields["last_name"] = *update.LastName
	}
	if update.Bio != nil {
		fields["bio"] = *update.Bio
	}
	if update.AvatarURL != nil {
		fields["avatar"] = *update.AvatarURL
	}
	if update.ZoomLink != nil {
		fields["zoom_link"] = *update.ZoomLink
	}

	if len(fields) > 0 {
		if err := s.UserRepo.UpdateFields(userID, fields); err != nil {
			return nil, err
		}
	}

	return s.GetUserByID(userID)
}

func (s *UserService) SetAvatar(userID uint, url string) (*model.User, error) {
	return s.UpdateProfile(userID, ProfileUpdate{AvatarURL: &url})
}

func (s *UserService) ListMentors() ([]model.User, error) {
	return s.UserRepo.FindMentors()
}
