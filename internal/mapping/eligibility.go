package mapping

import "github.com/diewo77/go-hebergement/internal/templating"

// Missing-data labels, resolved through i18n by callers.
const (
	MissingHotel    = "missing_hotel"
	MissingOperator = "missing_operator"
)

// Eligibility tells whether a document type can be generated for an
// aggregate and, if not, which related records are missing.
type Eligibility struct {
	CanGenerate bool     `json:"canGenerate"`
	Missing     []string `json:"missing,omitempty"`
}

type requirement struct {
	hotel, operator bool
}

var requirements = map[templating.DocumentType]requirement{
	templating.TypeInvoice:        {hotel: true, operator: true},
	templating.TypeBookingVoucher: {hotel: true, operator: true},
	templating.TypeExtension:      {hotel: true},
	templating.TypeTermination:    {},
}

// CanGenerate checks the related records a document type requires.
func CanGenerate(t templating.DocumentType, data ReservationData) Eligibility {
	req := requirements[t]
	var missing []string
	if req.hotel && data.Hotel == nil {
		missing = append(missing, MissingHotel)
	}
	if req.operator && data.Operator == nil {
		missing = append(missing, MissingOperator)
	}
	return Eligibility{CanGenerate: len(missing) == 0, Missing: missing}
}
