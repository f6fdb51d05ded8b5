package report

import (
	"strings"
	"testing"
)

func validInput() SubmissionInput {
	return SubmissionInput{
		ReporterName:   "Ana",
		BranchName:     "Head Office",
		DateStarted:    "2024-01-01",
		DateEnded:      "2024-01-31",
		SubmissionDate: "2024-02-01T09:00:00Z",
		Properties: []PropertyInput{{
			ID:        "aircon",
			Name:      "Aircon",
			Condition: ConditionGood,
		}},
	}
}

func hasFieldError(errs []FieldError, field string) bool {
	for _, e := range errs {
		if e.Field == field {
			return true
		}
	}
	return false
}

func TestValidateOK(t *testing.T) {
	if errs := ValidateSubmission(validInput()); len(errs) != 0 {
		t.Fatalf("expected no errors got %v", errs)
	}
}

func TestValidateReporterNameLength(t *testing.T) {
	cases := []struct {
		name string
		ok   bool
	}{
		{"A", false},
		{" A ", true},
		{strings.Repeat("é", 150), true},
		{strings.Repeat("é", 151), false},
	}
	for _, tc := range cases {
		in := validInput()
		in.ReporterName = tc.name
		errs := ValidateSubmission(in)
		if got := hasFieldError(errs, "reporterName"); got == tc.ok {
			t.Fatalf("name %q: expected ok=%v got errors %v", tc.name, tc.ok, errs)
		}
	}
}

func TestValidateCollectsAllViolations(t *testing.T) {
	in := validInput()
	in.ReporterName = "A"
	in.BranchName = "Nowhere"
	in.Properties[0].Condition = "Broken"
	errs := ValidateSubmission(in)
	if len(errs) < 3 {
		t.Fatalf("expected every violation reported, got %v", errs)
	}
	for _, field := range []string{"reporterName", "branchName", "properties[0].condition"} {
		if !hasFieldError(errs, field) {
			t.Fatalf("missing error for %s in %v", field, errs)
		}
	}
}

func TestValidateDateOrder(t *testing.T) {
	in := validInput()
	in.DateStarted = "2024-02-10"
	in.DateEnded = "2024-02-01"
	errs := ValidateSubmission(in)
	if !hasFieldError(errs, "dateEnded") {
		t.Fatalf("expected dateEnded-scoped error, got %v", errs)
	}
	if hasFieldError(errs, "dateStarted") {
		t.Fatalf("dateStarted should not carry the ordering error: %v", errs)
	}
}

func TestValidateNeedsFixingRequiresComments(t *testing.T) {
	in := validInput()
	in.Properties[0].Condition = ConditionNeedsFixing
	in.Properties[0].Comments = strptr("   ")
	errs := ValidateSubmission(in)
	if !hasFieldError(errs, "properties[0].comments") {
		t.Fatalf("expected comments error, got %v", errs)
	}

	in.Properties[0].Comments = strptr("hinge broken")
	if errs := ValidateSubmission(in); len(errs) != 0 {
		t.Fatalf("expected no errors with comments set, got %v", errs)
	}
}

func TestValidateCommentCeilings(t *testing.T) {
	in := validInput()
	long := strings.Repeat("x", MaxCommentLen+1)
	in.Properties[0].Comments = &long
	longer := strings.Repeat("y", MaxAdditionalLen+1)
	in.AdditionalComments = &longer
	errs := ValidateSubmission(in)
	if !hasFieldError(errs, "properties[0].comments") || !hasFieldError(errs, "additionalComments") {
		t.Fatalf("expected both comment-length errors, got %v", errs)
	}
}

func TestValidatePhotoCeilings(t *testing.T) {
	in := validInput()
	in.Properties[0].Condition = ConditionNeedsFixing
	in.Properties[0].Comments = strptr("broken")
	photos := make([]PhotoInput, MaxPhotosPerProperty+1)
	for i := range photos {
		photos[i] = PhotoInput{FileName: "p.jpg", Base64: "aGk=", MimeType: "image/jpeg", Size: MaxPhotoBytes + 1}
	}
	in.Properties[0].Photos = photos
	errs := ValidateSubmission(in)
	if !hasFieldError(errs, "properties[0].photos") {
		t.Fatalf("expected per-property count error, got %v", errs)
	}
	if !hasFieldError(errs, "properties[0].photos[0].size") {
		t.Fatalf("expected per-file size error, got %v", errs)
	}
	if !hasFieldError(errs, "properties") {
		t.Fatalf("expected total-size error, got %v", errs)
	}
}

func TestValidatePhotoLocation(t *testing.T) {
	in := validInput()
	in.Properties[0].Photos = []PhotoInput{{FileName: "p.gif", MimeType: "image/gif", Size: 10}}
	errs := ValidateSubmission(in)
	if !hasFieldError(errs, "properties[0].photos[0]") {
		t.Fatalf("expected missing-location error, got %v", errs)
	}
	if !hasFieldError(errs, "properties[0].photos[0].mimeType") {
		t.Fatalf("expected mime-type error, got %v", errs)
	}

	// either location alone is fine
	in.Properties[0].Photos = []PhotoInput{{FileName: "p.png", MimeType: "image/png", Size: 10, URL: "https://b/p.png", StorageKey: "k/p.png"}}
	if errs := ValidateSubmission(in); len(errs) != 0 {
		t.Fatalf("remote-only photo should pass, got %v", errs)
	}
}
