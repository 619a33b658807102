package models

import (
	"time"

	"gorm.io/gorm"
)

// Offering is a sellable service package of a product.
type Offering struct {
	ID        string `gorm:"column:offering_id;primaryKey;size:36" json:"offering_id"`
	ProductID string `gorm:"size:36;not null;index" json:"product_id"`

	OfferingName           string   `gorm:"size:255;not null" json:"offering_name"`
	SaasType               *string  `gorm:"size:100" json:"saas_type"`
	Brand                  *string  `gorm:"size:255" json:"brand"`
	SupportedProduct       *string  `gorm:"size:255" json:"supported_product"`
	ClientType             *string  `gorm:"size:255" json:"client_type"`
	ClientJourney          *string  `gorm:"size:255" json:"client_journey"`
	ClientJourneyStage     *string  `gorm:"size:255" json:"client_journey_stage"`
	FrameworkCategory      *string  `gorm:"size:255" json:"framework_category"`
	Scenario               *string  `gorm:"size:255" json:"scenario"`
	IBMSalesPlay           *string  `gorm:"column:ibm_sales_play;size:255" json:"ibm_sales_play"`
	TelSalesTactic         *string  `gorm:"size:255" json:"tel_sales_tactic"`
	Industry               *string  `gorm:"size:255" json:"industry"`
	OfferingTags           *string  `gorm:"type:text" json:"offering_tags"`
	ContentPage            *string  `gorm:"type:text" json:"content_page"`
	OfferingSalesContact   *string  `gorm:"size:255" json:"offering_sales_contact"`
	OfferingProductManager *string  `gorm:"size:255" json:"offering_product_manager"`
	OfferingPracticeLeader *string  `gorm:"size:255" json:"offering_practice_leader"`
	BusinessChallenges     *string  `gorm:"type:text" json:"business_challenges"`
	BusinessDrivers        *string  `gorm:"type:text" json:"business_drivers"`
	OfferingValue          *string  `gorm:"type:text" json:"offering_value"`
	TagLine                *string  `gorm:"type:text" json:"tag_line"`
	ElevatorPitch          *string  `gorm:"type:text" json:"elevator_pitch"`
	OfferingOutcomes       *string  `gorm:"type:text" json:"offering_outcomes"`
	KeyDeliverables        *string  `gorm:"type:text" json:"key_deliverables"`
	OfferingSummary        *string  `gorm:"type:text" json:"offering_summary"`
	WhenAndWhyToSell       *string  `gorm:"type:text" json:"when_and_why_to_sell"`
	BuyerPersona           *string  `gorm:"type:text" json:"buyer_persona"`
	UserPersona            *string  `gorm:"type:text" json:"user_persona"`
	ScopeSummary           *string  `gorm:"type:text" json:"scope_summary"`
	Duration               *string  `gorm:"size:50" json:"duration"`
	OCC                    *string  `gorm:"column:occ;type:text" json:"occ"`
	Prerequisites          *string  `gorm:"type:text" json:"prerequisites"`
	SeismicLink            *string  `gorm:"type:text" json:"seismic_link"`
	PartNumbers            *string  `gorm:"size:100" json:"part_numbers"`
	SalePrice              *float64 `gorm:"type:decimal(12,2)" json:"sale_price"`

	CreatedOn time.Time `gorm:"autoCreateTime" json:"created_on"`
	UpdatedOn time.Time `gorm:"autoUpdateTime" json:"updated_on"`

	ActivityLinks []OfferingActivity `gorm:"foreignKey:OfferingID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName implements gorm.Tabler.
func (Offering) TableName() string { return "offerings" }

// BeforeCreate assigns the primary key.
func (o *Offering) BeforeCreate(_ *gorm.DB) error {
	assignID(&o.ID)
	return nil
}
