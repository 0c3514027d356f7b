package usecase

// SourceLabels maps the short acquisition-channel codes embedded in the
// landing-page URLs to the human-readable labels written to the sheet.
// Configuration data: extend the map, not the resolver.
var SourceLabels = map[string]string{
	"mads":    "Meta Ads",
	"igs":     "Instagram",
	"fb":      "Facebook",
	"google":  "Google Ads",
	"tiktok":  "TikTok",
	"youtube": "YouTube",
	"yt":      "YouTube",
	"email":   "Email Marketing",
	"sms":     "SMS Marketing",
	"direct":  "Traffico Diretto",
}

// ResolveSourceLabel returns the label for a source code. Unknown codes pass
// through unchanged so new channels show up in the sheet before anyone
// remembers to register them; an absent code falls back to the campaign
// label.
func ResolveSourceLabel(code, fallback string) string {
	if code == "" {
		return fallback
	}
	if label, ok := SourceLabels[code]; ok {
		return label
	}
	return code
}
