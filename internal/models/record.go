package models

// PaymentStatus classifies a student by the two tracked month amounts.
type PaymentStatus string

const (
	StatusPaid    PaymentStatus = "paid"
	StatusPartial PaymentStatus = "partial"
	StatusUnpaid  PaymentStatus = "unpaid"
)

// StatusFor derives the payment status: paid when both months have a
// positive amount, partial when exactly one does, unpaid otherwise.
func StatusFor(currentMonth, previousMonth float64) PaymentStatus {
	switch {
	case currentMonth > 0 && previousMonth > 0:
		return StatusPaid
	case currentMonth > 0 || previousMonth > 0:
		return StatusPartial
	default:
		return StatusUnpaid
	}
}

// StudentRecord is one normalized row of the payment sheet.
//
// Fields holds every raw sheet column verbatim (including the ones that
// were canonicalized), so views can still display or sort by arbitrary
// column names the sheet happens to carry.
type StudentRecord struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	RollNo        string            `json:"rollno,omitempty"`
	CurrentMonth  float64           `json:"currentMonth"`
	PreviousMonth float64           `json:"previousMonth"`
	TotalPaid     float64           `json:"totalPaid"`
	LastPayment   string            `json:"lastPayment"`
	Status        PaymentStatus     `json:"status"`
	Phone         string            `json:"phone,omitempty"`
	Email         string            `json:"email,omitempty"`
	Fields        map[string]string `json:"fields,omitempty"`
}
