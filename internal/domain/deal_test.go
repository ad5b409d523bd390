package domain

import "testing"

func TestDealStatusValid(t *testing.T) {
	for _, s := range []DealStatus{StatusPending, StatusApproved, StatusRejected} {
		if !s.Valid() {
			t.Errorf("%q should be valid", s)
		}
	}
	if DealStatus("archived").Valid() {
		t.Error("archived should not be valid")
	}
}

func TestValidCategory(t *testing.T) {
	for _, c := range Categories {
		if !ValidCategory(c) {
			t.Errorf("%q should be valid", c)
		}
	}
	// 大小写敏感
	if ValidCategory("mode") || ValidCategory("Gadgets") {
		t.Error("unknown categories must be rejected")
	}
}

func TestDealPatchApply(t *testing.T) {
	d := Deal{
		Title:       "avant",
		Description: "desc",
		Price:       10,
		Category:    "Maison",
		Status:      StatusApproved,
		Temperature: 5,
		AuthorID:    "a",
	}
	title := "après"
	price := 8.5
	DealPatch{Title: &title, Price: &price}.Apply(&d)

	if d.Title != "après" || d.Price != 8.5 {
		t.Errorf("patched fields not applied: %+v", d)
	}
	if d.Description != "desc" || d.Category != "Maison" {
		t.Errorf("unset fields must keep their value: %+v", d)
	}
	if d.Status != StatusApproved || d.Temperature != 5 || d.AuthorID != "a" {
		t.Errorf("protected fields must never change: %+v", d)
	}
}
