package inventory

import "strings"

// unitAliases maps spelled-out piece units to the canonical "unid" tag.
var unitAliases = map[string]string{
	"unid":   "unid",
	"unidad": "unid",
	"u":      "unid",
	"pcs":    "unid",
	"p":      "unid",
}

// NormalizeName trims and case-folds an ingredient name so that
// "  Tomate " and "tomate" resolve to the same ledger entry.
func NormalizeName(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// NormalizeUnit canonicalizes unit spellings: anything starting with
// "kg" or "kil" becomes "kg", known piece-count spellings become
// "unid", and everything else passes through folded but unchanged.
// Units are open-ended; unknown tags are valid as-is.
func NormalizeUnit(raw string) string {
	u := strings.ToLower(strings.TrimSpace(raw))
	if strings.HasPrefix(u, "kg") || strings.HasPrefix(u, "kil") {
		return "kg"
	}
	if canon, ok := unitAliases[u]; ok {
		return canon
	}
	return u
}
