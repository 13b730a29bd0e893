package query

// alias is a phrase that names a country or region. A match is ignored when
// the word right before it is listed in notAfter ("south" before "africa").
type alias struct {
	phrase   string
	notAfter []string
}

func plain(phrases ...string) []alias {
	out := make([]alias, len(phrases))
	for i, p := range phrases {
		out[i] = alias{phrase: p}
	}
	return out
}

type countryEntry struct {
	name    string
	aliases []alias
}

// countryTable is scanned in order; match order becomes Spec.Countries order.
// Two-letter codes that collide with common English words (in, it, no, my, be,
// at, id, ca) or storage units (gb, tb) are absent.
var countryTable = []countryEntry{
	{"United States", append(plain("usa", "u.s.a.", "u.s.", "united states of america", "united states"),
		alias{phrase: "america", notAfter: []string{"north", "south", "latin", "central"}},
		alias{phrase: "american", notAfter: []string{"north", "south", "latin", "central"}},
		alias{phrase: "us", notAfter: []string{"show", "give", "tell", "let", "for", "to", "help"}},
	)},
	{"Canada", plain("canada", "canadian")},
	{"Mexico", plain("mexico", "méxico", "mx", "mexican")},
	{"Brazil", plain("brazil", "brasil", "br", "brazilian")},
	{"Argentina", plain("argentina", "argentine", "argentinian")},
	{"Chile", plain("chile", "chilean")},
	{"Colombia", plain("colombia", "colombian")},
	{"Peru", plain("peru", "perú", "peruvian")},
	{"United Kingdom", plain("uk", "u.k.", "united kingdom", "great britain", "britain", "england", "british")},
	{"Germany", plain("germany", "deutschland", "de", "german")},
	{"France", plain("france", "fr", "french")},
	{"Netherlands", plain("netherlands", "the netherlands", "holland", "nl", "dutch")},
	{"Spain", plain("spain", "españa", "espana", "es", "spanish")},
	{"Italy", plain("italy", "italia", "italian")},
	{"Poland", plain("poland", "polska", "pl", "polish")},
	{"Sweden", plain("sweden", "sverige", "se", "swedish")},
	{"Switzerland", plain("switzerland", "schweiz", "suisse", "ch", "swiss")},
	{"Ireland", plain("ireland", "ie", "irish")},
	{"Finland", plain("finland", "suomi", "fi", "finnish")},
	{"Norway", plain("norway", "norge", "norwegian")},
	{"Portugal", plain("portugal", "pt", "portuguese")},
	{"Belgium", plain("belgium", "belgique", "belgian")},
	{"Austria", plain("austria", "österreich", "austrian")},
	{"Czech Republic", plain("czech republic", "czechia", "cz", "czech")},
	{"Romania", plain("romania", "ro", "romanian")},
	{"Ukraine", plain("ukraine", "ua", "ukrainian")},
	{"Lithuania", plain("lithuania", "lt", "lithuanian")},
	{"Russia", plain("russia", "ru", "russian")},
	{"Japan", plain("japan", "nippon", "jp", "japanese")},
	{"China", plain("china", "cn", "prc", "chinese")},
	{"South Korea", plain("south korea", "korea", "kr", "korean")},
	{"India", plain("india", "bharat", "indian")},
	{"Singapore", plain("singapore", "sg", "singaporean")},
	{"Hong Kong", plain("hong kong", "hk")},
	{"Taiwan", plain("taiwan", "tw", "taiwanese")},
	{"Indonesia", plain("indonesia", "indonesian")},
	{"Vietnam", plain("vietnam", "viet nam", "vn", "vietnamese")},
	{"Thailand", plain("thailand", "thai")},
	{"Malaysia", plain("malaysia", "malaysian")},
	{"Philippines", plain("philippines", "ph", "filipino")},
	{"United Arab Emirates", plain("united arab emirates", "uae", "emirates", "dubai")},
	{"Israel", plain("israel", "il", "israeli")},
	{"Turkey", plain("turkey", "türkiye", "turkiye", "tr", "turkish")},
	{"Saudi Arabia", plain("saudi arabia", "saudi", "ksa")},
	{"Qatar", plain("qatar", "qatari")},
	{"South Africa", plain("south africa", "za", "rsa", "south african")},
	{"Nigeria", plain("nigeria", "ng", "nigerian")},
	{"Kenya", plain("kenya", "ke", "kenyan")},
	{"Egypt", plain("egypt", "eg", "egyptian")},
	{"Morocco", plain("morocco", "moroccan")},
	{"Australia", plain("australia", "au", "aussie", "australian")},
	{"New Zealand", plain("new zealand", "nz")},
}

type regionEntry struct {
	name    string
	aliases []alias
	members []string
}

// regionTable is scanned in order and the first matching region wins.
var regionTable = []regionEntry{
	{
		name:    "europe",
		aliases: plain("europe", "european", "eu"),
		members: []string{
			"United Kingdom", "Germany", "France", "Netherlands", "Spain", "Italy", "Poland",
			"Sweden", "Switzerland", "Ireland", "Finland", "Norway", "Portugal", "Belgium",
			"Austria", "Czech Republic", "Romania", "Ukraine", "Lithuania", "Russia",
		},
	},
	{
		name:    "asia",
		aliases: plain("asia", "asian", "apac", "asia pacific", "east asia", "southeast asia"),
		members: []string{
			"Japan", "China", "South Korea", "India", "Singapore", "Hong Kong", "Taiwan",
			"Indonesia", "Vietnam", "Thailand", "Malaysia", "Philippines",
		},
	},
	{
		name:    "north america",
		aliases: plain("north america", "north american"),
		members: []string{"United States", "Canada", "Mexico"},
	},
	{
		name:    "south america",
		aliases: plain("south america", "south american", "latin america", "latam"),
		members: []string{"Brazil", "Argentina", "Chile", "Colombia", "Peru"},
	},
	{
		name:    "middle east",
		aliases: plain("middle east", "mideast", "gulf"),
		members: []string{"United Arab Emirates", "Israel", "Turkey", "Saudi Arabia", "Qatar"},
	},
	{
		name: "africa",
		aliases: []alias{
			{phrase: "africa", notAfter: []string{"south"}},
			{phrase: "african", notAfter: []string{"south"}},
		},
		members: []string{"South Africa", "Nigeria", "Kenya", "Egypt", "Morocco"},
	},
	{
		name:    "oceania",
		aliases: plain("oceania", "australasia", "anz"),
		members: []string{"Australia", "New Zealand"},
	},
}

// numberWords maps spelled-out limits to integers.
var numberWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
}

// Countries returns the canonical country names known to the parser, in table order.
func Countries() []string {
	out := make([]string, len(countryTable))
	for i, c := range countryTable {
		out[i] = c.name
	}
	return out
}

// Regions returns the canonical region names known to the parser, in table order.
func Regions() []string {
	out := make([]string, len(regionTable))
	for i, r := range regionTable {
		out[i] = r.name
	}
	return out
}

// RegionMembers returns the member countries of a canonical region, or nil.
func RegionMembers(region string) []string {
	for _, r := range regionTable {
		if r.name == region {
			out := make([]string, len(r.members))
			copy(out, r.members)
			return out
		}
	}
	return nil
}
