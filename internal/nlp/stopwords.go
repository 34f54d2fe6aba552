package nlp

// German stopwords excluded from keyword extraction. Mirrors the word list
// used for marketplace review mining: articles, conjunctions, auxiliary and
// modal verbs, pronouns, negations, prepositions and filler adverbs.
var germanStopwords = map[string]struct{}{
	// articles
	"der": {}, "die": {}, "das": {}, "den": {}, "dem": {}, "des": {},
	"ein": {}, "eine": {}, "einer": {}, "einem": {}, "einen": {}, "eines": {},
	// conjunctions
	"und": {}, "oder": {}, "aber": {}, "doch": {}, "sondern": {}, "denn": {},
	"weder": {}, "noch": {},
	// auxiliary verbs
	"ist": {}, "sind": {}, "war": {}, "waren": {}, "sein": {}, "wird": {},
	"werden": {}, "wurde": {}, "wurden": {}, "hat": {}, "haben": {},
	"hatte": {}, "hatten": {}, "bin": {}, "bist": {}, "seid": {},
	// pronouns
	"ich": {}, "du": {}, "er": {}, "sie": {}, "es": {}, "wir": {}, "ihr": {},
	"mein": {}, "dein": {}, "unser": {}, "euer": {}, "meine": {}, "deine": {},
	"seine": {}, "mir": {}, "dir": {}, "ihm": {}, "uns": {}, "euch": {}, "ihnen": {},
	// negations
	"nicht": {}, "kein": {}, "keine": {}, "keiner": {}, "nichts": {},
	"nie": {}, "niemals": {},
	// prepositions
	"mit": {}, "bei": {}, "nach": {}, "von": {}, "zu": {}, "aus": {}, "für": {},
	"über": {}, "unter": {}, "vor": {}, "hinter": {}, "neben": {}, "zwischen": {},
	"durch": {}, "gegen": {}, "ohne": {}, "um": {},
	// adverbs and question words
	"sehr": {}, "auch": {}, "nur": {}, "schon": {}, "immer": {}, "wieder": {},
	"dann": {}, "jetzt": {}, "hier": {}, "dort": {}, "wo": {}, "wann": {},
	"wie": {}, "was": {}, "wer": {}, "warum": {},
	// modal verbs
	"kann": {}, "muss": {}, "soll": {}, "will": {}, "möchte": {}, "darf": {},
	"können": {}, "müssen": {},
	// misc
	"ja": {}, "nein": {}, "vielleicht": {}, "mehr": {}, "weniger": {},
	"alle": {}, "alles": {}, "jeder": {}, "jede": {}, "jedes": {},
	"dieser": {}, "diese": {}, "dieses": {}, "so": {}, "als": {}, "wenn": {},
}

// IsStopword reports whether the lowercase token is a German stopword.
func IsStopword(token string) bool {
	_, ok := germanStopwords[token]
	return ok
}
