package report

import (
	"testing"
	"time"

	"checkup/models"
)

func strptr(s string) *string { return &s }

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestHistoryEmptyInput(t *testing.T) {
	out := History(nil)
	if out == nil || len(out) != 0 {
		t.Fatalf("expected empty non-nil slice for unknown reporter, got %v", out)
	}
}

func TestHistoryNeedsFixingFilter(t *testing.T) {
	subs := []models.Submission{{
		PublicID:       "s1",
		ReporterName:   "Ana",
		BranchName:     "Head Office",
		SubmissionDate: ts("2024-02-01T09:00:00Z"),
		Properties: []models.PropertyReport{
			{ID: 1, PropertyID: "aircon", PropertyName: "Aircon", Condition: ConditionNeedsFixing, Comments: strptr("leaking")},
			// dirty row: comments present on a Good condition must still be excluded
			{ID: 2, PropertyID: "chairs", PropertyName: "Chairs", Condition: ConditionGood, Comments: strptr("scuffed but fine")},
			{ID: 3, PropertyID: "door", PropertyName: "Door", Condition: ConditionNotAvailable},
			// near-miss condition strings do not match
			{ID: 4, PropertyID: "carpet", PropertyName: "Carpet", Condition: "needs fixing"},
		},
	}}
	out := History(subs)
	if len(out) != 1 {
		t.Fatalf("expected 1 entry got %d", len(out))
	}
	nf := out[0].NeedsFixing
	if len(nf) != 1 || nf[0].PropertyID != "aircon" {
		t.Fatalf("expected only aircon in needsFixing, got %+v", nf)
	}
	if nf[0].Comments == nil || *nf[0].Comments != "leaking" {
		t.Fatalf("comments not carried over: %+v", nf[0])
	}
}

func TestHistoryOrdersBySubmissionDateDesc(t *testing.T) {
	subs := []models.Submission{
		{PublicID: "a", SubmissionDate: ts("2024-01-01T00:00:00Z")},
		{PublicID: "c", SubmissionDate: ts("2024-03-01T00:00:00Z")},
		{PublicID: "b", SubmissionDate: ts("2024-02-01T00:00:00Z")},
	}
	out := History(subs)
	want := []string{"c", "b", "a"}
	for i, id := range want {
		if out[i].ID != id {
			t.Fatalf("position %d: expected %s got %s", i, id, out[i].ID)
		}
	}
}

func TestHistoryPhotoMetadataOnly(t *testing.T) {
	subs := []models.Submission{{
		PublicID:       "s1",
		SubmissionDate: ts("2024-02-01T00:00:00Z"),
		Properties: []models.PropertyReport{{
			PropertyID:   "tables",
			PropertyName: "Tables",
			Condition:    ConditionNeedsFixing,
			Comments:     strptr("wobbly"),
			Photos: []models.Photo{
				{FileName: "a.jpg", MimeType: "image/jpeg", Size: 1024, Base64: "aGVsbG8="},
				{FileName: "b.png", MimeType: "image/png", Size: 2048, URL: "https://bucket/b.png", StorageKey: "pfx/b.png"},
			},
		}},
	}}
	out := History(subs)
	photos := out[0].NeedsFixing[0].Photos
	if len(photos) != 2 {
		t.Fatalf("expected 2 photos got %d", len(photos))
	}
	if photos[0].URL != "" || photos[0].StorageKey != "" {
		t.Fatalf("inline photo should project empty url/key: %+v", photos[0])
	}
	if photos[1].URL != "https://bucket/b.png" || photos[1].StorageKey != "pfx/b.png" {
		t.Fatalf("remote photo metadata lost: %+v", photos[1])
	}
	// PhotoMeta has no payload field; make sure sizes and names survive.
	if photos[0].FileName != "a.jpg" || photos[0].Size != 1024 {
		t.Fatalf("photo metadata mismatch: %+v", photos[0])
	}
}
