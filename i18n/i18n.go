// Package i18n translates message codes for the fr and en languages.
package i18n

import "strings"

const DefaultLanguage = "fr"

var messages = map[string]map[string]string{
	"fr": {
		"required":              "Requis",
		"invalid_choice":        "Valeur non autorisée",
		"too_long":              "Trop long",
		"duplicate":             "Doublon",
		"unauthorized":          "Authentification requise",
		"forbidden":             "Accès refusé",
		"not_found":             "Introuvable",
		"invalid_json":          "Requête invalide",
		"validation_failed":     "Données invalides",
		"missing_hotel":         "Hôtel non renseigné",
		"missing_operator":      "Opérateur non renseigné",
		"missing_variables":     "Variables obligatoires manquantes",
		"not_eligible":          "Document non disponible pour cette réservation",
		"template_not_found":    "Modèle introuvable",
		"template_inactive":     "Modèle désactivé",
		"template_invalid":      "Modèle invalide",
		"reservation_not_found": "Réservation introuvable",
		"generation_failed":     "Échec de la génération du document",
		"unsupported_format":    "Format non pris en charge",
		"preview_not_found":     "Aperçu introuvable ou expiré",
		"preview_released":      "Aperçu déjà libéré",
		"db_error":              "Erreur de base de données",
		"invalid_id":            "Identifiant invalide",
		"invalid_type":          "Type de document inconnu",
		"profile_not_found":     "Profil introuvable",
		"user_not_found":        "Utilisateur introuvable",
	},
	"en": {
		"required":              "Required",
		"invalid_choice":        "Value not allowed",
		"too_long":              "Too long",
		"duplicate":             "Duplicate",
		"unauthorized":          "Authentication required",
		"forbidden":             "Forbidden",
		"not_found":             "Not found",
		"invalid_json":          "Invalid request",
		"validation_failed":     "Invalid data",
		"missing_hotel":         "Hotel is missing",
		"missing_operator":      "Operator is missing",
		"missing_variables":     "Required variables are missing",
		"not_eligible":          "Document not available for this reservation",
		"template_not_found":    "Template not found",
		"template_inactive":     "Template is inactive",
		"template_invalid":      "Invalid template",
		"reservation_not_found": "Reservation not found",
		"generation_failed":     "Document generation failed",
		"unsupported_format":    "Unsupported format",
		"preview_not_found":     "Preview not found or expired",
		"preview_released":      "Preview already released",
		"db_error":              "Database error",
		"invalid_id":            "Invalid identifier",
		"invalid_type":          "Unknown document type",
		"profile_not_found":     "Profile not found",
		"user_not_found":        "User not found",
	},
}

// DetectLanguage picks the first supported language of an Accept-Language
// header, defaulting to fr.
func DetectLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		tag, _, _ := strings.Cut(strings.TrimSpace(part), ";")
		base, _, _ := strings.Cut(strings.ToLower(tag), "-")
		if _, ok := messages[base]; ok {
			return base
		}
	}
	return DefaultLanguage
}

// Supported reports whether lang has a message table.
func Supported(lang string) bool {
	_, ok := messages[lang]
	return ok
}

// T translates code, falling back to fr and then to the code itself.
func T(lang, code string) string {
	if msg, ok := messages[lang][code]; ok {
		return msg
	}
	if msg, ok := messages[DefaultLanguage][code]; ok {
		return msg
	}
	return code
}

// TAll translates each code.
func TAll(lang string, codes []string) []string {
	out := make([]string, len(codes))
	for i, c := range codes {
		out[i] = T(lang, c)
	}
	return out
}
