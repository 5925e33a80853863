package notify

import (
	"strings"
	"testing"

	"github.com/komolbek/expostandai/internal/domain"
)

func sampleRecord() *domain.InquiryRecord {
	return &domain.InquiryRecord{
		ID: "4f2b1a",
		Contact: domain.ContactInfo{
			Name:  "Ivan Petrov",
			Phone: "+998 90 123-45-67",
		},
		Data: domain.Inquiry{
			CompanyName:  "Acme",
			WidthMeters:  4,
			LengthMeters: 3,
			StandType:    domain.StandTypeCorner,
			BudgetRange:  "premium",
		},
	}
}

func TestNewInquiryEmailHTML(t *testing.T) {
	html := newInquiryEmailHTML(sampleRecord(), "https://expostand.example.com/admin/inquiries/4f2b1a")
	for _, want := range []string{
		"Acme",
		"12 м²",
		"Угловой",
		"Премиум",
		"Ivan Petrov",
		"+998 90 123-45-67",
		`href="https://expostand.example.com/admin/inquiries/4f2b1a"`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("email missing %q:\n%s", want, html)
		}
	}
}

func TestNewInquiryEmailUsesDashForMissingFields(t *testing.T) {
	rec := sampleRecord()
	rec.Data.WidthMeters = 0
	rec.Data.LengthMeters = 0
	rec.Data.StandType = ""
	rec.Data.BudgetRange = ""
	html := newInquiryEmailHTML(rec, "https://example.com/admin")
	if !strings.Contains(html, "—") {
		t.Fatalf("email should show a dash for missing fields:\n%s", html)
	}
}

func TestNewInquiryTelegramMessage(t *testing.T) {
	msg := newInquiryTelegramMessage(sampleRecord(), "https://expostand.example.com/admin/inquiries/4f2b1a")
	if !strings.Contains(msg, "Acme") {
		t.Fatalf("message missing company:\n%s", msg)
	}
	if !strings.Contains(msg, `12 м², Угловой`) {
		t.Fatalf("message missing stand details:\n%s", msg)
	}
	if !strings.Contains(msg, `\+998 90 123\-45\-67`) {
		t.Fatalf("phone not escaped for MarkdownV2:\n%s", msg)
	}
	if !strings.Contains(msg, "(https://expostand.example.com/admin/inquiries/4f2b1a)") {
		t.Fatalf("message missing admin link:\n%s", msg)
	}
}

func TestEscapeMarkdown(t *testing.T) {
	got := escapeMarkdown("a_b*c.d!e")
	want := `a\_b\*c\.d\!e`
	if got != want {
		t.Fatalf("escapeMarkdown = %q, want %q", got, want)
	}
}

func TestStandTypeLabelFallsBackToTitleCase(t *testing.T) {
	if got := standTypeLabel(domain.StandType("double_deck")); got != "Double Deck" {
		t.Fatalf("label = %q", got)
	}
}
