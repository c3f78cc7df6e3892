package models

// PlanName identifies a subscription tier
type PlanName string

const (
	PlanStarter    PlanName = "Starter"
	PlanGrowth     PlanName = "Growth"
	PlanEnterprise PlanName = "Enterprise"
)

// SubscriptionStatus represents the billing state of a subscription
type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionPastDue  SubscriptionStatus = "past_due"
	SubscriptionCanceled SubscriptionStatus = "canceled"
)

// Subscription describes the plan attached to a user
type Subscription struct {
	PlanName        PlanName           `json:"planName"`
	Status          SubscriptionStatus `json:"status"`
	NextBillingDate string             `json:"nextBillingDate"`
	Price           string             `json:"price"`
	Features        []string           `json:"features"`
}

// BillingInfo holds invoicing details for a user
type BillingInfo struct {
	IsCorporate bool   `json:"isCorporate"`
	CompanyName string `json:"companyName"`
	TaxID       string `json:"taxId"`
	TaxOffice   string `json:"taxOffice"`
	Address     string `json:"address"`
	City        string `json:"city"`
	Country     string `json:"country"`
}

// User is the authenticated account holder
type User struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	Name         string       `json:"name"`
	Subscription Subscription `json:"subscription"`
	BillingInfo  BillingInfo  `json:"billingInfo"`
}

// BillingInfoPatch lists the updatable billing fields. Nil fields are
// left untouched; set fields overwrite.
type BillingInfoPatch struct {
	IsCorporate *bool   `json:"isCorporate,omitempty"`
	CompanyName *string `json:"companyName,omitempty"`
	TaxID       *string `json:"taxId,omitempty"`
	TaxOffice   *string `json:"taxOffice,omitempty"`
	Address     *string `json:"address,omitempty"`
	City        *string `json:"city,omitempty"`
	Country     *string `json:"country,omitempty"`
}

// UserPatch is a typed partial update for a user profile. The billing
// sub-record is merged field by field; name and email overwrite.
type UserPatch struct {
	Name        *string           `json:"name,omitempty"`
	Email       *string           `json:"email,omitempty"`
	BillingInfo *BillingInfoPatch `json:"billingInfo,omitempty"`
}

// Apply merges the patch into the user in place.
func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.BillingInfo != nil {
		p.BillingInfo.apply(&u.BillingInfo)
	}
}

func (p BillingInfoPatch) apply(b *BillingInfo) {
	if p.IsCorporate != nil {
		b.IsCorporate = *p.IsCorporate
	}
	if p.CompanyName != nil {
		b.CompanyName = *p.CompanyName
	}
	if p.TaxID != nil {
		b.TaxID = *p.TaxID
	}
	if p.TaxOffice != nil {
		b.TaxOffice = *p.TaxOffice
	}
	if p.Address != nil {
		b.Address = *p.Address
	}
	if p.City != nil {
		b.City = *p.City
	}
	if p.Country != nil {
		b.Country = *p.Country
	}
}
