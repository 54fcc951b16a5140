package usecase

// vegetableAliases maps normalized names the vision model is known to produce
// onto canonical catalog names. It is the last resolution tier, after exact
// and substring matching, and recovers plurals and colloquial synonyms that
// don't substring-match any catalog entry. Extend the data, not the resolver.
var vegetableAliases = map[string]string{
	"potato":          "Potato",
	"potatoes":        "Potato",
	"tomato":          "Tomato",
	"tomatoes":        "Tomato",
	"onion":           "Onion",
	"onions":          "Onion",
	"carrot":          "Carrot",
	"carrots":         "Carrot",
	"lettuce":         "Lettuce",
	"cabbage":         "Cabbage",
	"cauliflower":     "Cauliflower",
	"eggplant":        "Eggplant",
	"aubergine":       "Eggplant",
	"brinjal":         "Eggplant",
	"ginger":          "Ginger",
	"garlic":          "Garlic",
	"mint":            "Mint",
	"bok choy":        "Chinese Cabbage (Bok choy)",
	"pak choi":        "Chinese Cabbage (Bok choy)",
	"chinese cabbage": "Chinese Cabbage (Bok choy)",
	"spring onion":    "Onion Spring",
	"spring onions":   "Onion Spring",
	"green onion":     "Onion Spring",
	"scallion":        "Onion Spring",
	"onion spring":    "Onion Spring",
}
