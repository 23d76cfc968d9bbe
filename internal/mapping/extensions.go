package mapping

import (
	"context"
	"math"
	"strings"

	"github.com/diewo77/go-hebergement/internal/templating"
)

type extension func(ctx context.Context, m *Mapper, d templating.Dictionary, data ReservationData)

var extensions = map[templating.DocumentType]extension{
	templating.TypeInvoice:        invoiceExtension,
	templating.TypeBookingVoucher: voucherExtension,
	templating.TypeExtension:      prolongationExtension,
	templating.TypeTermination:    terminationExtension,
}

func invoiceExtension(ctx context.Context, m *Mapper, d templating.Dictionary, data ReservationData) {
	r := data.Reservation
	total := float64(r.Nights()) * r.NightlyPrice
	ht := math.Round(total/(1+m.vatRate)*100) / 100

	d[KeyInvoiceNumber] = invoiceNumber(r, m.now())
	d[KeyInvoiceDate] = formatDate(m.now())
	d[KeyAmountExclTax] = formatAmount(ht)
	d[KeyVATRate] = formatPercent(m.vatRate)
	d[KeyVATAmount] = formatAmount(total - ht)

	issuer := m.source.Issuer(ctx)
	d[KeyIssuer] = issuer.Name
	d[KeyIssuerAddress] = issuer.Address
	d[KeyIssuerSiret] = issuer.Siret
	d[KeyIssuerVAT] = issuer.VATNumber
	d[KeyIssuerAgrement] = issuer.Agrement
	d[KeyIBAN] = issuer.IBAN
	d[KeyBIC] = issuer.BIC
	d[KeyPaymentTerms] = issuer.PaymentTerms
}

func voucherExtension(ctx context.Context, m *Mapper, d templating.Dictionary, data ReservationData) {
	r := data.Reservation
	if data.Room != nil {
		d[KeyRoom] = data.Room.Number
		d[KeyRoomType] = data.Room.Kind
	} else {
		d[KeyRoom] = ""
		d[KeyRoomType] = ""
	}

	d[KeyFamilyStatus] = r.FamilyStatus
	if strings.TrimSpace(r.FamilyStatus) == "" {
		d[KeyFamilyStatus] = DefaultFamilyStatus
	}
	adults := r.Adults
	if adults <= 0 {
		adults = 1
	}
	d[KeyAdults] = itoa(adults)
	d[KeyChildren] = "0"
	if r.Children > 0 {
		d[KeyChildren] = itoa(r.Children)
	}

	occupants := m.source.Occupants(ctx, r.ID)
	d[KeyOccupants] = strings.Join(occupants, ", ")
	count := adults + max(r.Children, 0)
	if r.Adults <= 0 && r.Children <= 0 && len(occupants) > 0 {
		count = len(occupants)
	}
	d[KeyOccupantsNb] = itoa(count)
}

func prolongationExtension(_ context.Context, _ *Mapper, d templating.Dictionary, data ReservationData) {
	r := data.Reservation
	d[KeyNewDeparture] = formatDatePtr(r.ExtendedUntil)
	extra := 0
	if r.ExtendedUntil != nil {
		extra = nightsBetween(r.DepartureDate, *r.ExtendedUntil)
	}
	d[KeyExtraNights] = itoa(extra)
	d[KeyExtensionAmount] = formatAmount(float64(extra) * r.NightlyPrice)
	d[KeyExtensionReason] = r.ExtensionReason
	if d[KeyExtensionReason] == "" {
		d[KeyExtensionReason] = "Prolongation de la prise en charge"
	}
}

func terminationExtension(_ context.Context, _ *Mapper, d templating.Dictionary, data ReservationData) {
	r := data.Reservation
	end := r.DepartureDate
	if r.EndedAt != nil {
		end = *r.EndedAt
	}
	done := nightsBetween(r.ArrivalDate, end)
	d[KeyEndDate] = formatDate(end)
	d[KeyNightsDone] = itoa(done)
	d[KeyFinalAmount] = formatAmount(float64(done) * r.NightlyPrice)
	d[KeyEndReason] = r.EndReason
	if d[KeyEndReason] == "" {
		d[KeyEndReason] = "Fin de prise en charge"
	}
}
