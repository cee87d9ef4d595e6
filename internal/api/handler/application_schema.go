package handler

import "github.com/ignitecapital/funding-platform/internal/core/domain"

type fieldsRequest struct {
	BusinessName    string  `json:"business_name"    validate:"required"`
	BusinessSector  string  `json:"business_sector"  validate:"required"`
	Summary         string  `json:"summary"          validate:"required"`
	AmountRequested float64 `json:"amount_requested" validate:"required,gt=0"`
	YearsTrading    int     `json:"years_trading"    validate:"min=0"`
}

func (r fieldsRequest) toDomain() domain.Fields {
	return domain.Fields{
		BusinessName:    r.BusinessName,
		BusinessSector:  r.BusinessSector,
		Summary:         r.Summary,
		AmountRequested: r.AmountRequested,
		YearsTrading:    r.YearsTrading,
	}
}

type createApplicationRequest struct {
	FundType string        `json:"fund_type" validate:"required,oneof=IGNITE ELEVATE"`
	Fields   fieldsRequest `json:"fields"    validate:"required"`
}

type updateApplicationRequest struct {
	Fields fieldsRequest `json:"fields" validate:"required"`
}

type setStatusRequest struct {
	Status      string `json:"status"       validate:"required,oneof=DRAFT SUBMITTED UNDER_REVIEW APPROVED REJECTED NEEDS_REVISION"`
	ReviewNotes string `json:"review_notes" validate:"max=2000"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listApplicationsResponse struct {
	Data       []*domain.Application `json:"data"`
	Pagination paginationResponse    `json:"pagination"`
}
