package leave

import (
	"time"

	"go-hrms/internal/employee"
)

// Allocation is the annual entitlement per leave type, in days.
type Allocation map[Type]float64

const accrualCapMonths = 12

// AnnualAllocation computes what an employee is entitled to for the year,
// driven by employment type and status:
//
//   - interns and anyone on probation accrue one casual day per full month
//     of service, capped at twelve, and get no sick or floating days;
//   - contract staff get the standard casual and sick quota but no
//     floating days;
//   - everyone else gets the full standard quota.
func AnnualAllocation(
	employmentType employee.EmploymentType,
	status employee.EmployeeStatus,
	dateOfJoining, now time.Time,
) Allocation {
	switch {
	case employmentType == employee.EmploymentIntern || status == employee.StatusProbation:
		months := monthsOfService(dateOfJoining, now)
		if months > accrualCapMonths {
			months = accrualCapMonths
		}
		return Allocation{
			TypeCasual:   float64(months),
			TypeSick:     0,
			TypeFloating: 0,
		}
	case employmentType == employee.EmploymentContract:
		return Allocation{
			TypeCasual:   12,
			TypeSick:     6,
			TypeFloating: 0,
		}
	default:
		return Allocation{
			TypeCasual:   12,
			TypeSick:     6,
			TypeFloating: 5,
		}
	}
}

// monthsOfService counts full calendar months between joining and now.
// A month only counts once the joining day-of-month has passed again.
func monthsOfService(dateOfJoining, now time.Time) int {
	months := (now.Year()-dateOfJoining.Year())*12 + int(now.Month()) - int(dateOfJoining.Month())
	if now.Day() < dateOfJoining.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

// RemainingBalance floors at zero; legacy rows can leave an employee
// over-consumed and a negative balance must not surface to clients.
func RemainingBalance(allocated, used float64) float64 {
	if b := allocated - used; b > 0 {
		return b
	}
	return 0
}
