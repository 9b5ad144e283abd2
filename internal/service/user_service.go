package service

import (
	"student-projects/internal/dto"
	"student-projects/internal/repository"
)

type UserService interface {
	ListUsers(query *dto.ListUsersQuery) ([]*dto.UserResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) ListUsers(query *dto.ListUsersQuery) ([]*dto.UserResponse, error) {
	role := ""
	if query.Role != nil {
		role = *query.Role
	}
	users, err := s.userRepo.ListByRole(role)
	if err != nil {
		return nil, err
	}
	return dto.ToUserResponses(users), nil
}
