package service

import "ecodrip-server/internal/modules/auth/repo"

type Service struct {
	userStore repo.UserStore
}

func New(userStore repo.UserStore) *Service {
	return &Service{userStore: userStore}
}
