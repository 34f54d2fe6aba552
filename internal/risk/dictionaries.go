package risk

import "german_market/internal/domain"

// Built-in German risk dictionaries. All terms lowercase; matching is
// containment so inflected forms ("schnelle Rücksendung") still hit.
var defaultKeywords = map[domain.RiskCategory][]string{
	domain.RiskLegal: {
		"anwalt", "rechtsanwalt", "klage", "gericht", "anzeige",
		"verbraucherschutz", "abmahnung", "schadensersatz", "haftung",
		"betrug", "täuschung", "irreführend",
	},
	domain.RiskSafety: {
		"gefährlich", "verletzung", "verletzt", "brand", "feuer",
		"explosion", "giftig", "allergie", "allergisch", "krankenhaus",
		"notfall",
	},
	domain.RiskRefund: {
		"rückerstattung", "geld zurück", "erstattung", "rücksendung",
		"widerruf", "stornierung", "chargeback",
	},
	domain.RiskComplaint: {
		"beschwerde", "reklamation", "keine antwort",
		"ignoriert", "unverschämt", "frechheit", "niemals wieder",
	},
}

// Terms whose presence alone justifies a high severity: explicit legal action
// or acute danger to the customer.
var defaultCritical = []string{
	"anwalt", "rechtsanwalt", "klage", "gericht", "abmahnung",
	"schadensersatz", "betrug",
	"verletzung", "verletzt", "brand", "explosion", "giftig",
	"krankenhaus", "notfall",
}
