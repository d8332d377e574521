package domain

import (
	"fmt"
	"math"
)

// MortgageInput are the parameters of an amortized fixed-rate loan.
type MortgageInput struct {
	Principal     float64
	AnnualRatePct float64
	TermYears     int
	DownPayment   float64
}

// MortgageInstallment is one month of an amortization schedule.
type MortgageInstallment struct {
	Month            int
	PrincipalPortion float64
	InterestPortion  float64
	RemainingBalance float64
}

// MortgageSchedule is the full repayment plan for a loan.
type MortgageSchedule struct {
	MonthlyPayment float64
	TotalPayment   float64
	TotalInterest  float64
	Installments   []MortgageInstallment
}

// BuildMortgageSchedule computes a standard amortization schedule. A zero
// interest rate degenerates to equal principal installments.
func BuildMortgageSchedule(in MortgageInput) (*MortgageSchedule, error) {
	loan := in.Principal - in.DownPayment
	if loan <= 0 {
		return nil, fmt.Errorf("%w: loan amount must be positive", ErrValidation)
	}
	if in.TermYears <= 0 || in.TermYears > 50 {
		return nil, fmt.Errorf("%w: term must be between 1 and 50 years", ErrValidation)
	}
	if in.AnnualRatePct < 0 {
		return nil, fmt.Errorf("%w: rate cannot be negative", ErrValidation)
	}

	months := in.TermYears * 12
	monthlyRate := in.AnnualRatePct / 100 / 12

	var payment float64
	if monthlyRate == 0 {
		payment = loan / float64(months)
	} else {
		factor := math.Pow(1+monthlyRate, float64(months))
		payment = loan * monthlyRate * factor / (factor - 1)
	}

	schedule := &MortgageSchedule{
		MonthlyPayment: round2(payment),
		Installments:   make([]MortgageInstallment, 0, months),
	}

	balance := loan
	for m := 1; m <= months; m++ {
		interest := balance * monthlyRate
		principal := payment - interest
		if m == months {
			// absorb rounding drift into the final installment
			principal = balance
		}
		balance -= principal
		schedule.Installments = append(schedule.Installments, MortgageInstallment{
			Month:            m,
			PrincipalPortion: round2(principal),
			InterestPortion:  round2(interest),
			RemainingBalance: round2(math.Max(balance, 0)),
		})
		schedule.TotalInterest += interest
	}
	schedule.TotalInterest = round2(schedule.TotalInterest)
	schedule.TotalPayment = round2(loan + schedule.TotalInterest)
	return schedule, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
