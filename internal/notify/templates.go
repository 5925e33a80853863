package notify

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/komolbek/expostandai/internal/domain"
)

var standTypeLabels = map[domain.StandType]string{
	domain.StandTypeLinear:    "Линейный",
	domain.StandTypeCorner:    "Угловой",
	domain.StandTypePeninsula: "Полуостров",
	domain.StandTypeIsland:    "Остров",
}

var budgetLabels = map[domain.BudgetTier]string{
	domain.BudgetEconomy:  "Эконом",
	domain.BudgetStandard: "Стандарт",
	domain.BudgetPremium:  "Премиум",
}

var titleCaser = cases.Title(language.Und)

func standTypeLabel(t domain.StandType) string {
	if t == "" {
		return "—"
	}
	if label, ok := standTypeLabels[t]; ok {
		return label
	}
	return titleCaser.String(strings.ReplaceAll(string(t), "_", " "))
}

func budgetLabel(rec *domain.InquiryRecord) string {
	if strings.TrimSpace(rec.Data.BudgetRange) == "" {
		return "—"
	}
	return budgetLabels[rec.Data.BudgetTier()]
}

func areaLabel(rec *domain.InquiryRecord) string {
	area := rec.Data.FloorArea()
	if area <= 0 {
		return "—"
	}
	return fmt.Sprintf("%g м²", area)
}

func newInquirySubject(rec *domain.InquiryRecord) string {
	return "Новая заявка на стенд: " + rec.Data.CompanyName
}

func newInquiryEmailHTML(rec *domain.InquiryRecord, adminURL string) string {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
<div style="background: #2563eb; color: white; padding: 20px; border-radius: 8px 8px 0 0;">
<h1 style="margin: 0;">Новая заявка на стенд</h1>
</div>
<div style="background: #f8fafc; padding: 20px; border: 1px solid #e2e8f0;">
`)
	writeDetail(&b, "Компания", rec.Data.CompanyName)
	writeDetail(&b, "Площадь", areaLabel(rec))
	writeDetail(&b, "Тип", standTypeLabel(rec.Data.StandType))
	writeDetail(&b, "Бюджет", budgetLabel(rec))
	b.WriteString(`<hr style="border: none; border-top: 1px solid #e2e8f0; margin: 20px 0;">` + "\n")
	writeDetail(&b, "Контакт", rec.Contact.Name)
	writeDetail(&b, "Телефон", rec.Contact.Phone)
	if rec.Contact.Email != "" {
		writeDetail(&b, "Email", rec.Contact.Email)
	}
	fmt.Fprintf(&b, `<a href="%s" style="display: inline-block; background: #2563eb; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; margin-top: 15px;">Открыть в панели</a>`+"\n", adminURL)
	b.WriteString(`</div>
<div style="background: #f1f5f9; padding: 15px 20px; border-radius: 0 0 8px 8px; text-align: center;">
<p style="margin: 0; color: #64748b; font-size: 14px;">ExpoStand AI Designer</p>
</div>
</div>
</body>
</html>`)
	return b.String()
}

func writeDetail(b *strings.Builder, label, value string) {
	if value == "" {
		value = "—"
	}
	fmt.Fprintf(b, `<div style="margin: 8px 0;"><span style="font-weight: bold; color: #64748b;">%s:</span> %s</div>`+"\n", label, value)
}

func newInquiryTelegramMessage(rec *domain.InquiryRecord, adminURL string) string {
	details := standTypeLabel(rec.Data.StandType)
	if area := rec.Data.FloorArea(); area > 0 {
		details = fmt.Sprintf("%g м², %s", area, details)
	}
	return fmt.Sprintf(`🆕 *Новая заявка\!*

*Компания:* %s
*Детали стенда:* %s
*Бюджет:* %s
*Телефон клиента:* %s

🔗 [Ссылка на заявку в админке](%s)`,
		escapeMarkdown(rec.Data.CompanyName),
		escapeMarkdown(details),
		escapeMarkdown(budgetLabel(rec)),
		escapeMarkdown(rec.Contact.Phone),
		adminURL)
}

// escapeMarkdown escapes the characters Telegram's MarkdownV2 mode reserves.
func escapeMarkdown(text string) string {
	var b strings.Builder
	for _, r := range text {
		if strings.ContainsRune(`_*[]()~`+"`"+`>#+-=|{}.!`, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
