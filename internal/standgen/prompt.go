package standgen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/komolbek/expostandai/internal/domain"
)

const (
	defaultAreaSqm      = 24.0
	defaultHeightMeters = 3.0
	defaultBrandColors  = "professional corporate colors"
)

var stylePhrases = map[domain.StandStyle]string{
	domain.StyleHiTech:  "modern hi-tech style with aluminum frames, glass panels, LED accent lighting, sleek metallic finishes",
	domain.StyleClassic: "classic interior style with wooden panels, warm ambient lighting, elegant fabric finishes, sophisticated design",
	domain.StyleEco:     "eco-friendly style with natural wood, bamboo elements, live plants, sustainable materials, organic shapes",
	domain.StyleMinimal: "minimalist clean design with white surfaces, simple geometry, hidden storage, pure forms",
}

// typePhrases encode the spatial wall contract of each booth type. The
// open/closed side counts steer the image model and must stay explicit.
var typePhrases = map[domain.StandType]string{
	domain.StandTypeLinear:    "linear booth with 3 closed back walls and 1 open front side",
	domain.StandTypeCorner:    "corner booth with 2 closed walls meeting at a right angle and 2 open sides",
	domain.StandTypePeninsula: "peninsula booth with 1 closed back wall and 3 open sides",
	domain.StandTypeIsland:    "island booth with no walls, open on all 4 sides, accessible from everywhere",
}

var zonePhrases = map[domain.StandZone]string{
	domain.ZoneReception:     "reception counter with company branding",
	domain.ZonePresentation:  "presentation area with display screen",
	domain.ZoneOpenMeeting:   "open meeting area with seating",
	domain.ZoneClosedMeeting: "enclosed private meeting room",
	domain.ZoneMiniKitchen:   "small kitchenette area",
	domain.ZoneStorage:       "storage room",
}

var elementPhrases = map[domain.StandElement]string{
	domain.ElementDisplayCases:   "glass display cases for products",
	domain.ElementBrochureStands: "brochure and literature stands",
	domain.ElementPodiums:        "podiums for equipment display",
	domain.ElementMonitorsLED:    "LED screens and monitors",
	domain.ElementPlants:         "decorative live plants and greenery",
}

var budgetPhrases = map[domain.BudgetTier]string{
	domain.BudgetEconomy:  "cost-effective practical materials and clean finishes",
	domain.BudgetStandard: "quality mid-range materials and solid finishes",
	domain.BudgetPremium:  "premium high-end materials, luxury finishes and refined detailing",
}

// BuildPrompt maps an inquiry plus an optional logo analysis into the
// generation prompt for one variant. It is pure and deterministic so repeated
// calls with identical inputs produce byte-identical prompts.
func BuildPrompt(inq domain.Inquiry, variant Variant, logo *LogoAnalysis) string {
	company := strings.TrimSpace(inq.CompanyName)
	if company == "" {
		company = "COMPANY"
	}
	signage := strings.ToUpper(company)

	var b strings.Builder
	fmt.Fprintf(&b, "Professional photorealistic 3D render of an exhibition trade show booth for %s.\n", company)

	switch variant {
	case VariantAlternative:
		b.WriteString("Alternative layout with different arrangement of zones. ")
	case VariantPremium:
		b.WriteString("Premium upgraded version with enhanced materials and larger signage. ")
	}

	typePhrase := typePhrases[inq.StandType]
	if typePhrase == "" {
		typePhrase = "exhibition booth"
	}
	fmt.Fprintf(&b, "%s, %s.\n", typePhrase, dimensionPhrase(inq))

	stylePhrase := stylePhrases[inq.Style]
	if stylePhrase == "" {
		stylePhrase = "modern professional style"
	}
	fmt.Fprintf(&b, "%s, built with %s.\n", stylePhrase, budgetPhrases[inq.BudgetTier()])

	fmt.Fprintf(&b, "Height: %s meters", formatMeters(heightOrDefault(inq)))
	if inq.HasSuspended {
		b.WriteString(", with impressive suspended hanging structure above the booth")
	}
	b.WriteString(".\n")

	if zones := joinZones(inq.Zones); zones != "" {
		fmt.Fprintf(&b, "Functional zones include: %s.\n", zones)
	}
	if elements := joinElements(inq.Elements); elements != "" {
		fmt.Fprintf(&b, "Features: %s.\n", elements)
	}

	writeBranding(&b, inq, signage, logo)

	if req := strings.TrimSpace(inq.SpecialRequests); req != "" {
		fmt.Fprintf(&b, "Incorporate these special requests: %s.\n", req)
	}
	if excl := strings.TrimSpace(inq.Exclusions); excl != "" {
		fmt.Fprintf(&b, "Do NOT include any of the following: %s.\n", excl)
	}

	b.WriteString("Trade show exhibition hall environment with professional lighting, neighboring booths visible in background, visitors walking by for scale.\n")
	b.WriteString("Photorealistic architectural visualization quality, high detail, professional photography style, well-lit, no watermarks.")
	return b.String()
}

// writeBranding emits one of three mutually exclusive branding blocks: a
// described logo, an undescribed logo, or name-only signage.
func writeBranding(b *strings.Builder, inq domain.Inquiry, signage string, logo *LogoAnalysis) {
	_, hasLogoFile := FindLogoFile(inq.BrandFiles)

	switch {
	case logo != nil:
		b.WriteString("The company logo is the PRIMARY visual element: reproduce it large and illuminated on the main fascia header, the reception counter front, and other key surfaces. ")
		fmt.Fprintf(b, "Logo appearance: %s. ", strings.TrimSpace(logo.Description))
		if logo.HasText && strings.TrimSpace(logo.TextContent) != "" {
			fmt.Fprintf(b, "The logo contains the text %q, reproduce it exactly. ", strings.TrimSpace(logo.TextContent))
		}
		fmt.Fprintf(b, "The company name %s appears only as smaller secondary signage text.\n", signage)
		fmt.Fprintf(b, "Brand colors: %s.\n", brandColors(inq, logo))
	case hasLogoFile:
		b.WriteString("The company logo is the PRIMARY visual element: place it large and illuminated on the main fascia header, the reception counter front, and other key surfaces. ")
		fmt.Fprintf(b, "The company name %s appears only as smaller secondary signage text.\n", signage)
		fmt.Fprintf(b, "Brand colors: %s.\n", brandColors(inq, nil))
	default:
		fmt.Fprintf(b, "Large illuminated %q company signage is the dominant visual feature, prominently displayed on the main fascia.\n", signage)
		fmt.Fprintf(b, "Brand colors: %s.\n", brandColors(inq, nil))
	}
}

func brandColors(inq domain.Inquiry, logo *LogoAnalysis) string {
	if logo != nil && len(logo.Colors) > 0 {
		return strings.Join(logo.Colors, ", ")
	}
	if colors := strings.TrimSpace(inq.BrandColors); colors != "" {
		return colors
	}
	var parts []string
	if c := strings.TrimSpace(inq.ColorMain); c != "" {
		parts = append(parts, "main "+c)
	}
	if c := strings.TrimSpace(inq.ColorAccent); c != "" {
		parts = append(parts, "accent "+c)
	}
	if c := strings.TrimSpace(inq.ColorBackground); c != "" {
		parts = append(parts, "background "+c)
	}
	if len(parts) > 0 {
		return strings.Join(parts, ", ")
	}
	return defaultBrandColors
}

// dimensionPhrase spells out the footprint numerically. Explicit width x
// length win over a separately supplied area.
func dimensionPhrase(inq domain.Inquiry) string {
	if inq.WidthMeters > 0 && inq.LengthMeters > 0 {
		area := inq.WidthMeters * inq.LengthMeters
		return fmt.Sprintf("%s x %s meters (%s square meters floor area)",
			formatMeters(inq.WidthMeters), formatMeters(inq.LengthMeters), formatMeters(area))
	}
	area := inq.AreaSqm
	if area <= 0 {
		area = defaultAreaSqm
	}
	return fmt.Sprintf("approximately %s square meters floor area", formatMeters(area))
}

func heightOrDefault(inq domain.Inquiry) float64 {
	if inq.HeightMeters > 0 {
		return inq.HeightMeters
	}
	return defaultHeightMeters
}

func formatMeters(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func joinZones(zones []domain.StandZone) string {
	var parts []string
	for _, z := range zones {
		if phrase := zonePhrases[z]; phrase != "" {
			parts = append(parts, phrase)
		} else if z != "" {
			parts = append(parts, string(z))
		}
	}
	return strings.Join(parts, ", ")
}

func joinElements(elements []domain.StandElement) string {
	var parts []string
	for _, e := range elements {
		if phrase := elementPhrases[e]; phrase != "" {
			parts = append(parts, phrase)
		} else if e != "" {
			parts = append(parts, string(e))
		}
	}
	return strings.Join(parts, ", ")
}
