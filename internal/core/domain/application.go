package domain

import "time"

// FundType identifies the funding program an application targets.
type FundType string

const (
	FundIgnite  FundType = "IGNITE"
	FundElevate FundType = "ELEVATE"
)

// Valid reports whether the fund type is one of the defined programs.
func (f FundType) Valid() bool {
	return f == FundIgnite || f == FundElevate
}

// ApplicationStatus represents the review lifecycle state of an application.
type ApplicationStatus string

const (
	StatusDraft         ApplicationStatus = "DRAFT"
	StatusSubmitted     ApplicationStatus = "SUBMITTED"
	StatusUnderReview   ApplicationStatus = "UNDER_REVIEW"
	StatusApproved      ApplicationStatus = "APPROVED"
	StatusRejected      ApplicationStatus = "REJECTED"
	StatusNeedsRevision ApplicationStatus = "NEEDS_REVISION"
)

// validTransitions defines the allowed state machine transitions.
// APPROVED and REJECTED are terminal.
var validTransitions = map[ApplicationStatus][]ApplicationStatus{
	StatusDraft:         {StatusSubmitted},
	StatusNeedsRevision: {StatusSubmitted},
	StatusSubmitted:     {StatusUnderReview},
	StatusUnderReview:   {StatusApproved, StatusRejected, StatusNeedsRevision},
}

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Valid reports whether the status is one of the six defined states.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusUnderReview,
		StatusApproved, StatusRejected, StatusNeedsRevision:
		return true
	}
	return false
}

// Editable reports whether the owner may still modify the application
// (field updates and document uploads).
func (s ApplicationStatus) Editable() bool {
	return s == StatusDraft || s == StatusNeedsRevision
}

// DocumentType categorises an uploaded supporting document.
type DocumentType string

const (
	DocBusinessPlan        DocumentType = "BUSINESS_PLAN"
	DocFinancialStatements DocumentType = "FINANCIAL_STATEMENTS"
	DocPitchDeck           DocumentType = "PITCH_DECK"
	DocIDDocument          DocumentType = "ID_DOCUMENT"
	DocOther               DocumentType = "OTHER"
)

// Valid reports whether the document type is one of the defined categories.
func (d DocumentType) Valid() bool {
	switch d {
	case DocBusinessPlan, DocFinancialStatements, DocPitchDeck, DocIDDocument, DocOther:
		return true
	}
	return false
}

// Document is a file attached to an application. It cannot exist without its
// parent and is removed when the parent application is deleted.
type Document struct {
	ID             string       `json:"id" bson:"id"`
	Type           DocumentType `json:"document_type" bson:"document_type"`
	FileName       string       `json:"file_name" bson:"file_name"`
	StorageLocator string       `json:"-" bson:"storage_locator"`
	SizeBytes      int64        `json:"size_bytes" bson:"size_bytes"`
	UploadedAt     time.Time    `json:"uploaded_at" bson:"uploaded_at"`
}

// Fields carries the applicant-supplied business data. The core treats the
// values as opaque form content.
type Fields struct {
	BusinessName    string  `json:"business_name" bson:"business_name"`
	BusinessSector  string  `json:"business_sector" bson:"business_sector"`
	Summary         string  `json:"summary" bson:"summary"`
	AmountRequested float64 `json:"amount_requested" bson:"amount_requested"`
	YearsTrading    int     `json:"years_trading" bson:"years_trading"`
}

// Application is the core aggregate root: one owner, an ordered document
// collection, and a status driven by the transition table above.
type Application struct {
	ID          string            `json:"id" bson:"_id,omitempty"`
	OwnerID     string            `json:"owner_id" bson:"owner_id"`
	FundType    FundType          `json:"fund_type" bson:"fund_type"`
	Status      ApplicationStatus `json:"status" bson:"status"`
	Fields      Fields            `json:"fields" bson:"fields"`
	ReviewNotes string            `json:"review_notes,omitempty" bson:"review_notes,omitempty"`
	Documents   []Document        `json:"documents" bson:"documents"`
	CreatedAt   time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at" bson:"updated_at"`
}
