package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// StandType is the exhibition-booth wall configuration, determining how many
// sides are open to visitor traffic.
type StandType string

const (
	StandTypeLinear    StandType = "linear"
	StandTypeCorner    StandType = "corner"
	StandTypePeninsula StandType = "peninsula"
	StandTypeIsland    StandType = "island"
)

// StandStyle selects the overall material and lighting direction of the booth.
type StandStyle string

const (
	StyleHiTech  StandStyle = "hi-tech"
	StyleClassic StandStyle = "classic"
	StyleEco     StandStyle = "eco"
	StyleMinimal StandStyle = "minimal"
)

// BudgetTier is the normalized three-level budget classification. Legacy
// numeric-bucket values from older clients are folded into these tiers.
type BudgetTier string

const (
	BudgetEconomy  BudgetTier = "economy"
	BudgetStandard BudgetTier = "standard"
	BudgetPremium  BudgetTier = "premium"
)

type StandZone string

const (
	ZoneReception     StandZone = "reception"
	ZonePresentation  StandZone = "presentation"
	ZoneOpenMeeting   StandZone = "open_meeting"
	ZoneClosedMeeting StandZone = "closed_meeting"
	ZoneMiniKitchen   StandZone = "mini_kitchen"
	ZoneStorage       StandZone = "storage"
)

type StandElement string

const (
	ElementDisplayCases   StandElement = "display_cases"
	ElementBrochureStands StandElement = "brochure_stands"
	ElementPodiums        StandElement = "podiums"
	ElementMonitorsLED    StandElement = "monitors_led"
	ElementPlants         StandElement = "plants"
)

// UploadedFile references a client upload (logo, brand guideline, photo). The
// URL may be relative to the configured public base URL.
type UploadedFile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}

// Inquiry is the structured requirements record collected by the form/chat
// layer. It is the sole input of the generation pipeline and is treated as
// immutable once handed over.
type Inquiry struct {
	CompanyName      string `json:"company_name"`
	ProductsServices string `json:"products_services,omitempty"`

	ExhibitionName string `json:"exhibition_name,omitempty"`
	ExhibitionDate string `json:"exhibition_date,omitempty"`

	// Either AreaSqm alone or explicit WidthMeters x LengthMeters. Explicit
	// dimensions win when both are present.
	AreaSqm      float64 `json:"area_sqm,omitempty"`
	WidthMeters  float64 `json:"width_meters,omitempty"`
	LengthMeters float64 `json:"length_meters,omitempty"`
	HeightMeters float64 `json:"height_meters,omitempty"`
	HasSuspended bool    `json:"has_suspended,omitempty"`

	StandType  StandType  `json:"stand_type,omitempty"`
	Style      StandStyle `json:"style,omitempty"`
	MainGoal   string     `json:"main_goal,omitempty"`
	StaffCount int        `json:"staff_count,omitempty"`

	Zones    []StandZone    `json:"zones,omitempty"`
	Elements []StandElement `json:"elements,omitempty"`

	BrandColors     string `json:"brand_colors,omitempty"`
	ColorMain       string `json:"color_main,omitempty"`
	ColorAccent     string `json:"color_accent,omitempty"`
	ColorBackground string `json:"color_background,omitempty"`

	BrandFiles         []UploadedFile `json:"brand_files,omitempty"`
	PreviousStandFiles []UploadedFile `json:"previous_stand_files,omitempty"`

	BudgetRange     string `json:"budget_range,omitempty"`
	SpecialRequests string `json:"special_requests,omitempty"`
	Exclusions      string `json:"exclusions,omitempty"`
}

// FloorArea returns the stand footprint in square meters, preferring explicit
// width x length over a separately supplied area.
func (i Inquiry) FloorArea() float64 {
	if i.WidthMeters > 0 && i.LengthMeters > 0 {
		return i.WidthMeters * i.LengthMeters
	}
	return i.AreaSqm
}

// BudgetTier folds the budget_range field, including legacy numeric buckets,
// into the three-level tier used by the prompt vocabulary.
func (i Inquiry) BudgetTier() BudgetTier {
	switch strings.ToLower(strings.TrimSpace(i.BudgetRange)) {
	case "economy", "under_5000", "5000_10000", "under_500k", "500k_1m":
		return BudgetEconomy
	case "premium", "luxury", "20000_50000", "over_50000", "2m_5m", "over_5m":
		return BudgetPremium
	default:
		return BudgetStandard
	}
}

// Validate checks the minimal contract required before generation or
// persistence. Enum fields are checked only when set; the form layer may
// submit partially filled records for early previews.
func (i Inquiry) Validate() error {
	if strings.TrimSpace(i.CompanyName) == "" {
		return fmt.Errorf("%w: company_name is required", ErrInvalidInquiry)
	}
	if i.StandType != "" {
		switch i.StandType {
		case StandTypeLinear, StandTypeCorner, StandTypePeninsula, StandTypeIsland:
		default:
			return fmt.Errorf("%w: unknown stand_type %q", ErrInvalidInquiry, i.StandType)
		}
	}
	if i.Style != "" {
		switch i.Style {
		case StyleHiTech, StyleClassic, StyleEco, StyleMinimal:
		default:
			return fmt.Errorf("%w: unknown style %q", ErrInvalidInquiry, i.Style)
		}
	}
	if i.AreaSqm < 0 || i.WidthMeters < 0 || i.LengthMeters < 0 || i.HeightMeters < 0 {
		return fmt.Errorf("%w: dimensions must be positive", ErrInvalidInquiry)
	}
	return nil
}

// ContactInfo accompanies a submitted inquiry.
type ContactInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

func (c ContactInfo) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: contact name is required", ErrInvalidInquiry)
	}
	if strings.TrimSpace(c.Phone) == "" {
		return fmt.Errorf("%w: contact phone is required", ErrInvalidInquiry)
	}
	return nil
}

// InquiryStatus tracks the sales workflow of a stored inquiry.
type InquiryStatus string

const (
	StatusNew      InquiryStatus = "new"
	StatusQuoted   InquiryStatus = "quoted"
	StatusAccepted InquiryStatus = "accepted"
	StatusRejected InquiryStatus = "rejected"
	StatusArchived InquiryStatus = "archived"
)

// InquiryRecord is the persisted form of a submitted inquiry, reviewed and
// quoted through the admin screens.
type InquiryRecord struct {
	ID        string        `json:"id"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	Status    InquiryStatus `json:"status"`
	Country   string        `json:"country,omitempty"`

	Contact ContactInfo `json:"contact"`
	Data    Inquiry     `json:"data"`

	GeneratedImages    []string        `json:"generated_images,omitempty"`
	SelectedImageIndex *int            `json:"selected_image_index,omitempty"`
	ConversationLog    json.RawMessage `json:"conversation_log,omitempty"`

	QuotedPrice *float64 `json:"quoted_price,omitempty"`
	AdminNotes  string   `json:"admin_notes,omitempty"`
}

// PromoCode grants a discount communicated to the client after submission.
type PromoCode struct {
	ID              string     `json:"id"`
	Code            string     `json:"code"`
	DiscountPercent int        `json:"discount_percent"`
	Active          bool       `json:"active"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// AdminUser can sign in to the review dashboard.
type AdminUser struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
