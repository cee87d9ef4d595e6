package domain

import "testing"

func TestApplicationStatus_CanTransitionTo(t *testing.T) {
	all := []ApplicationStatus{
		StatusDraft, StatusSubmitted, StatusUnderReview,
		StatusApproved, StatusRejected, StatusNeedsRevision,
	}

	allowed := map[ApplicationStatus]map[ApplicationStatus]bool{
		StatusDraft:         {StatusSubmitted: true},
		StatusNeedsRevision: {StatusSubmitted: true},
		StatusSubmitted:     {StatusUnderReview: true},
		StatusUnderReview: {
			StatusApproved:      true,
			StatusRejected:      true,
			StatusNeedsRevision: true,
		},
	}

	for _, from := range all {
		for _, to := range all {
			want := allowed[from][to]
			if got := from.CanTransitionTo(to); got != want {
				t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestApplicationStatus_TerminalStates(t *testing.T) {
	all := []ApplicationStatus{
		StatusDraft, StatusSubmitted, StatusUnderReview,
		StatusApproved, StatusRejected, StatusNeedsRevision,
	}

	for _, terminal := range []ApplicationStatus{StatusApproved, StatusRejected} {
		for _, next := range all {
			if terminal.CanTransitionTo(next) {
				t.Errorf("%s should be terminal, but allows transition to %s", terminal, next)
			}
		}
	}
}

func TestApplicationStatus_Valid(t *testing.T) {
	valid := []ApplicationStatus{
		StatusDraft, StatusSubmitted, StatusUnderReview,
		StatusApproved, StatusRejected, StatusNeedsRevision,
	}
	for _, s := range valid {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}

	for _, s := range []ApplicationStatus{"", "PENDING", "draft"} {
		if s.Valid() {
			t.Errorf("%q should be invalid", s)
		}
	}
}

func TestApplicationStatus_Editable(t *testing.T) {
	cases := map[ApplicationStatus]bool{
		StatusDraft:         true,
		StatusNeedsRevision: true,
		StatusSubmitted:     false,
		StatusUnderReview:   false,
		StatusApproved:      false,
		StatusRejected:      false,
	}
	for status, want := range cases {
		if got := status.Editable(); got != want {
			t.Errorf("Editable(%s) = %v, want %v", status, got, want)
		}
	}
}

func TestFundType_Valid(t *testing.T) {
	if !FundIgnite.Valid() || !FundElevate.Valid() {
		t.Fatalf("defined fund types should be valid")
	}
	if FundType("GROWTH").Valid() {
		t.Fatalf("unknown fund type should be invalid")
	}
}

func TestDocumentType_Valid(t *testing.T) {
	valid := []DocumentType{
		DocBusinessPlan, DocFinancialStatements, DocPitchDeck, DocIDDocument, DocOther,
	}
	for _, d := range valid {
		if !d.Valid() {
			t.Errorf("%s should be valid", d)
		}
	}
	if DocumentType("RESUME").Valid() {
		t.Fatalf("unknown document type should be invalid")
	}
}

func TestRole_Valid(t *testing.T) {
	for _, r := range []Role{RoleUser, RoleAdmin, RoleSuperAdmin} {
		if !r.Valid() {
			t.Errorf("%s should be valid", r)
		}
	}
	if Role("MODERATOR").Valid() {
		t.Fatalf("unknown role should be invalid")
	}
}

func TestRole_IsAdmin(t *testing.T) {
	if RoleUser.IsAdmin() {
		t.Fatalf("USER should not be admin")
	}
	if !RoleAdmin.IsAdmin() || !RoleSuperAdmin.IsAdmin() {
		t.Fatalf("ADMIN and SUPER_ADMIN should be admin")
	}
}
