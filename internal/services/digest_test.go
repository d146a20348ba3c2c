package services

import (
	"strings"
	"testing"
	"time"

	"showscraper/internal/models"
)

func TestDigestBody(t *testing.T) {
	date := time.Date(2026, 9, 5, 0, 0, 0, 0, time.Local)
	doors := time.Date(2026, 9, 5, 19, 0, 0, 0, time.Local)
	show, err := models.NewShow("Thou, Cloud Rat", date, nil, &doors, "Mohawk", []string{"Thou", "Cloud Rat"})
	if err != nil {
		t.Fatalf("NewShow: %v", err)
	}

	body := DigestBody([]models.Show{show})
	for _, want := range []string{
		"1 new show(s) found",
		"Sat Sep 5 2026 @ Mohawk",
		"bands: Thou, Cloud Rat",
		"doors: 7:00 PM",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("digest missing %q:\n%s", want, body)
		}
	}
	if strings.Contains(body, "music:") {
		t.Fatalf("digest should omit unset show time:\n%s", body)
	}
}
