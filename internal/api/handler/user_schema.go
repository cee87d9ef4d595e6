package handler

import "github.com/ignitecapital/funding-platform/internal/core/domain"

type setRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=USER ADMIN SUPER_ADMIN"`
}

type setActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

type listUsersResponse struct {
	Data       []*domain.User     `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

type statsResponse struct {
	Applications map[string]int64 `json:"applications_by_status"`
	Users        map[string]int64 `json:"users_by_role"`
}
