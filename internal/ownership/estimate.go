package ownership

import (
	"fmt"
	"math"

	"github.com/spigell/carmatch/internal/catalog"
	"github.com/spigell/carmatch/internal/scoring"
)

const (
	// InterestRate is the average APR used for every estimate.
	InterestRate      = 0.065
	DefaultTermMonths = 60
)

// Financing describes how the buyer pays for the vehicle.
type Financing struct {
	TradeIn     float64 `json:"trade_in_value" mapstructure:"trade-in"`
	DownPayment float64 `json:"down_payment" mapstructure:"down-payment"`
	TermMonths  int     `json:"loan_term" mapstructure:"term"`
}

type Estimate struct {
	Vehicle     VehicleSummary `json:"car"`
	Financing   Loan           `json:"financing"`
	AnnualCosts AnnualCosts    `json:"annual_costs"`
}

type VehicleSummary struct {
	ID    string  `json:"id"`
	Make  string  `json:"make"`
	Model string  `json:"model"`
	MSRP  float64 `json:"msrp"`
}

type Loan struct {
	DownPayment    float64 `json:"down_payment"`
	TradeIn        float64 `json:"trade_in_value"`
	LoanAmount     float64 `json:"loan_amount"`
	InterestRate   float64 `json:"interest_rate"`
	TermMonths     int     `json:"loan_term_months"`
	MonthlyPayment float64 `json:"monthly_payment"`
	TotalInterest  float64 `json:"total_interest"`
	TotalCost      float64 `json:"total_cost"`
}

type AnnualCosts struct {
	Insurance   float64 `json:"insurance"`
	Maintenance float64 `json:"maintenance"`
	Fuel        float64 `json:"fuel_estimate"`
}

// Compute returns the financing and yearly running costs for v.
// A loan that would be zero or negative is reported as paid in full.
func Compute(v *catalog.Vehicle, f Financing) (*Estimate, error) {
	if v == nil {
		return nil, fmt.Errorf("vehicle is required")
	}
	if f.TradeIn < 0 || f.DownPayment < 0 {
		return nil, fmt.Errorf("trade-in and down payment must not be negative")
	}

	term := f.TermMonths
	if term <= 0 {
		term = DefaultTermMonths
	}

	price := v.BasicInfo.MSRP
	loan := price - f.TradeIn - f.DownPayment

	var monthly, total, interest float64
	if loan > 0 {
		rate := InterestRate / 12
		growth := math.Pow(1+rate, float64(term))
		monthly = loan * rate * growth / (growth - 1)
		total = monthly*float64(term) + f.DownPayment
		interest = total - price + f.TradeIn
	} else {
		loan = 0
		total = price - f.TradeIn
	}

	return &Estimate{
		Vehicle: VehicleSummary{
			ID:    v.ID,
			Make:  v.BasicInfo.Make,
			Model: v.BasicInfo.Model,
			MSRP:  price,
		},
		Financing: Loan{
			DownPayment:    f.DownPayment,
			TradeIn:        f.TradeIn,
			LoanAmount:     scoring.Round2(loan),
			InterestRate:   InterestRate,
			TermMonths:     term,
			MonthlyPayment: scoring.Round2(monthly),
			TotalInterest:  scoring.Round2(interest),
			TotalCost:      scoring.Round2(total),
		},
		AnnualCosts: AnnualCosts{
			Insurance:   v.Costs.InsuranceAnnual,
			Maintenance: v.Costs.MaintenanceAnnual,
			Fuel:        scoring.Round2(scoring.AnnualFuelCost(v)),
		},
	}, nil
}
