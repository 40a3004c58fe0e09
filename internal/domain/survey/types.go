package survey

import (
	"context"
	"time"
)

// Entity is one loan-application record as stored. The financial block
// (house/car ownership, savings, previous-loan history) mirrors every
// field the guest intake form submits, not just the subset the admin
// tables render.
type Entity struct {
	ID string `json:"id"`

	FullName           string    `json:"fullName"`
	DateOfBirth        time.Time `json:"dateOfBirth"`
	Gender             string    `json:"gender"`
	IdentityNumber     string    `json:"identityNumber"`
	MaritalStatus      string    `json:"maritalStatus"`
	NumberOfDependents int32     `json:"numberOfDependents"`
	EducationLevel     string    `json:"educationLevel"`
	Address            string    `json:"address"`

	Occupation          string `json:"occupation"`
	CompanyName         string `json:"companyName"`
	CompanyType         string `json:"companyType"`
	YearsAtCurrentJob   int32  `json:"yearsAtCurrentJob"`
	MonthlyIncome       int64  `json:"monthlyIncome"`
	SalaryPaymentMethod string `json:"salaryPaymentMethod"`

	SalarySlipImage  []byte `json:"salarySlipImage,omitempty"`
	UtilityBillImage []byte `json:"utilityBillImage,omitempty"`

	OwnHouseOrLand          bool   `json:"ownHouseOrLand"`
	OwnCarOrValuableVehicle bool   `json:"ownCarOrValuableVehicle"`
	HasSavingsAccount       bool   `json:"hasSavingsAccount"`
	LifeInsuranceValue      int64  `json:"lifeInsuranceValue"`
	Investments             string `json:"investments"`

	HadPreviousLoans       bool   `json:"hadPreviousLoans"`
	LoanInstitution        string `json:"loanInstitution"`
	LoanLimit              int64  `json:"loanLimit"`
	CurrentOutstandingDebt int64  `json:"currentOutstandingDebt"`
	LoanTerm               string `json:"loanTerm"`

	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	Facebook    string `json:"facebook"`

	CreditScore int32 `json:"creditScore"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateInput carries the intake submission. The service fills
// CreditScore before handing it to the repository.
type CreateInput struct {
	FullName           string
	DateOfBirth        time.Time
	Gender             string
	IdentityNumber     string
	MaritalStatus      string
	NumberOfDependents int32
	EducationLevel     string
	Address            string

	Occupation          string
	CompanyName         string
	CompanyType         string
	YearsAtCurrentJob   int32
	MonthlyIncome       int64
	SalaryPaymentMethod string

	SalarySlipImage  []byte
	UtilityBillImage []byte

	OwnHouseOrLand          bool
	OwnCarOrValuableVehicle bool
	HasSavingsAccount       bool
	LifeInsuranceValue      int64
	Investments             string

	HadPreviousLoans       bool
	LoanInstitution        string
	LoanLimit              int64
	CurrentOutstandingDebt int64
	LoanTerm               string

	PhoneNumber string
	Email       string
	Facebook    string

	CreditScore int32
}

// Patch is the general partial update. Nil fields are left untouched.
// The credit score is deliberately absent; it only moves through
// UpdateScore.
type Patch struct {
	FullName           *string    `json:"fullName"`
	DateOfBirth        *time.Time `json:"dateOfBirth"`
	Gender             *string    `json:"gender"`
	IdentityNumber     *string    `json:"identityNumber"`
	MaritalStatus      *string    `json:"maritalStatus"`
	NumberOfDependents *int32     `json:"numberOfDependents"`
	EducationLevel     *string    `json:"educationLevel"`
	Address            *string    `json:"address"`

	Occupation          *string `json:"occupation"`
	CompanyName         *string `json:"companyName"`
	CompanyType         *string `json:"companyType"`
	YearsAtCurrentJob   *int32  `json:"yearsAtCurrentJob"`
	MonthlyIncome       *int64  `json:"monthlyIncome"`
	SalaryPaymentMethod *string `json:"salaryPaymentMethod"`

	OwnHouseOrLand          *bool   `json:"ownHouseOrLand"`
	OwnCarOrValuableVehicle *bool   `json:"ownCarOrValuableVehicle"`
	HasSavingsAccount       *bool   `json:"hasSavingsAccount"`
	LifeInsuranceValue      *int64  `json:"lifeInsuranceValue"`
	Investments             *string `json:"investments"`

	HadPreviousLoans       *bool   `json:"hadPreviousLoans"`
	LoanInstitution        *string `json:"loanInstitution"`
	LoanLimit              *int64  `json:"loanLimit"`
	CurrentOutstandingDebt *int64  `json:"currentOutstandingDebt"`
	LoanTerm               *string `json:"loanTerm"`

	PhoneNumber *string `json:"phoneNumber"`
	Email       *string `json:"email"`
	Facebook    *string `json:"facebook"`
}

type ScoreBand struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// Stats backs the admin dashboard charts.
type Stats struct {
	TotalSurveys int64       `json:"total_surveys"`
	AverageScore float64     `json:"average_score"`
	ScoreBands   []ScoreBand `json:"score_bands"`
}

type Repository interface {
	Create(ctx context.Context, in CreateInput) (*Entity, error)
	GetByID(ctx context.Context, id string) (*Entity, error)
	List(ctx context.Context) ([]Entity, error)
	ApplyPatch(ctx context.Context, id string, p Patch) (*Entity, error)
	ReplaceSalarySlip(ctx context.Context, id string, image []byte) (*Entity, error)
	ReplaceUtilityBill(ctx context.Context, id string, image []byte) (*Entity, error)
	UpdateScore(ctx context.Context, id string, score int32) (*Entity, error)
	Delete(ctx context.Context, id string) (bool, error)
	Stats(ctx context.Context) (*Stats, error)
}
