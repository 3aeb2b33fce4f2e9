package zones

// DefaultSpec returns the built-in classification.
func DefaultSpec() Spec {
	return Spec{
		// OFAC primary sanctions
		Sanctions: []string{"RU", "IR", "KP", "SY", "CU", "VE", "BY"},
		Conflict:  []string{"UA", "YE", "SD", "MM", "ET", "SO", "AF", "LY"},
		Maritime: []string{
			"Red Sea", "Gulf of Aden", "Suez Canal", "Strait of Hormuz",
			"Gulf of Guinea", "Malacca Strait", "South China Sea",
		},
		Piracy: []string{"Somalia", "Nigeria", "Indonesia", "Philippines"},
		Names: map[string]string{
			"GB": "United Kingdom", "US": "United States", "CN": "China",
			"DE": "Germany", "FR": "France", "IT": "Italy", "ES": "Spain",
			"NL": "Netherlands", "BE": "Belgium", "SA": "Saudi Arabia",
			"AE": "United Arab Emirates", "IN": "India", "JP": "Japan",
			"KR": "South Korea", "SG": "Singapore", "HK": "Hong Kong",
			"AU": "Australia", "BR": "Brazil", "MX": "Mexico", "TR": "Turkey",
			"RU": "Russia", "IR": "Iran", "KP": "North Korea", "SY": "Syria",
			"CU": "Cuba", "VE": "Venezuela", "BY": "Belarus", "UA": "Ukraine",
			"YE": "Yemen", "SD": "Sudan", "MM": "Myanmar", "ET": "Ethiopia",
		},
	}
}

// DefaultTable returns a Table built from DefaultSpec.
func DefaultTable() *Table {
	return New(DefaultSpec())
}
