package mapping

import "github.com/diewo77/go-hebergement/internal/templating"

// Dictionary keys produced by the mapper.
const (
	KeyDate              = templating.DateToken
	KeyDateDuJour        = templating.DateTokenAlt
	KeyReservationNumber = "numero_reservation"
	KeyGuest             = "usager"
	KeyArrival           = "date_arrivee"
	KeyDeparture         = "date_depart"
	KeyNights            = "nombre_nuits"
	KeyNightlyPrice      = "prix_nuit"
	KeyTotal             = "prix_total"
	KeyPrescriber        = "prescripteur"

	KeyHotel                = "hotel"
	KeyHotelAddress         = "adresse_hotel"
	KeyHotelPhone           = "telephone_hotel"
	KeyHotelEmail           = "email_hotel"
	KeyHotelSiret           = "siret_hotel"
	KeyHotelDirector        = "directeur_hotel"
	KeyHotelDirectorContact = "contact_directeur"
	KeyHotelCapacity        = "capacite_hotel"

	KeyOperator         = "operateur"
	KeyOperatorAddress  = "adresse_operateur"
	KeyOperatorPhone    = "telephone_operateur"
	KeyOperatorEmail    = "email_operateur"
	KeyOperatorContact  = "contact_operateur"
	KeyOperatorSiret    = "siret_operateur"
	KeyOperatorAgrement = "agrement_operateur"
	KeyOperatorManager  = "responsable_operateur"

	KeyInvoiceNumber  = "numero_facture"
	KeyInvoiceDate    = "date_facture"
	KeyAmountExclTax  = "montant_ht"
	KeyVATRate        = "taux_tva"
	KeyVATAmount      = "montant_tva"
	KeyIBAN           = "iban"
	KeyBIC            = "bic"
	KeyPaymentTerms   = "conditions_paiement"
	KeyIssuer         = "emetteur"
	KeyIssuerAddress  = "adresse_emetteur"
	KeyIssuerSiret    = "siret_emetteur"
	KeyIssuerVAT      = "tva_emetteur"
	KeyIssuerAgrement = "agrement_emetteur"

	KeyRoom         = "chambre"
	KeyRoomType     = "type_chambre"
	KeyOccupantsNb  = "nombre_occupants"
	KeyFamilyStatus = "situation_familiale"
	KeyAdults       = "nombre_adultes"
	KeyChildren     = "nombre_enfants"
	KeyOccupants    = "occupants"

	KeyNewDeparture    = "nouvelle_date_depart"
	KeyExtraNights     = "nuits_supplementaires"
	KeyExtensionAmount = "montant_prolongation"
	KeyExtensionReason = "motif_prolongation"

	KeyEndDate     = "date_fin"
	KeyEndReason   = "motif_fin"
	KeyNightsDone  = "nuits_effectuees"
	KeyFinalAmount = "montant_final"
)

var commonKeys = []string{
	KeyDate, KeyDateDuJour, KeyReservationNumber, KeyGuest, KeyArrival, KeyDeparture,
	KeyNights, KeyNightlyPrice, KeyTotal, KeyPrescriber,
}

var hotelKeys = []string{
	KeyHotel, KeyHotelAddress, KeyHotelPhone, KeyHotelEmail,
	KeyHotelSiret, KeyHotelDirector, KeyHotelDirectorContact, KeyHotelCapacity,
}

var operatorKeys = []string{
	KeyOperator, KeyOperatorAddress, KeyOperatorPhone, KeyOperatorEmail, KeyOperatorContact,
	KeyOperatorSiret, KeyOperatorAgrement, KeyOperatorManager,
}

var typeKeys = map[templating.DocumentType][]string{
	templating.TypeInvoice: {
		KeyInvoiceNumber, KeyInvoiceDate, KeyAmountExclTax, KeyVATRate, KeyVATAmount,
		KeyIBAN, KeyBIC, KeyPaymentTerms, KeyIssuer, KeyIssuerAddress, KeyIssuerSiret,
		KeyIssuerVAT, KeyIssuerAgrement,
	},
	templating.TypeBookingVoucher: {
		KeyRoom, KeyRoomType, KeyOccupantsNb, KeyFamilyStatus, KeyAdults, KeyChildren, KeyOccupants,
	},
	templating.TypeExtension: {
		KeyNewDeparture, KeyExtraNights, KeyExtensionAmount, KeyExtensionReason,
	},
	templating.TypeTermination: {
		KeyEndDate, KeyEndReason, KeyNightsDone, KeyFinalAmount,
	},
}

// syntheticKeys lists, per type, the keys filled from fixed literals rather
// than from the reservation.
var syntheticKeys = map[templating.DocumentType][]string{
	templating.TypeInvoice: {
		KeyIssuer, KeyIssuerAddress, KeyIssuerSiret, KeyIssuerVAT, KeyIssuerAgrement,
		KeyIBAN, KeyBIC, KeyPaymentTerms,
	},
	templating.TypeBookingVoucher: {KeyOccupants},
}

// KeySet returns every key the mapper can produce for a document type.
// Keys depending on an absent hotel or operator are still listed.
func KeySet(t templating.DocumentType) []string {
	out := make([]string, 0, len(commonKeys)+len(hotelKeys)+len(operatorKeys)+len(typeKeys[t]))
	out = append(out, commonKeys...)
	out = append(out, hotelKeys...)
	out = append(out, operatorKeys...)
	return append(out, typeKeys[t]...)
}
