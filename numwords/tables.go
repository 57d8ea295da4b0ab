package numwords

// baseWords holds every lookup key DisassembleGroup can produce.
var baseWords = map[int]string{
	0: "zero",
	1: "jeden",
	2: "dwa",
	3: "trzy",
	4: "cztery",
	5: "pięć",
	6: "sześć",
	7: "siedem",
	8: "osiem",
	9: "dziewięć",

	10: "dziesięć",
	11: "jedenaście",
	12: "dwanaście",
	13: "trzynaście",
	14: "czternaście",
	15: "piętnaście",
	16: "szesnaście",
	17: "siedemnaście",
	18: "osiemnaście",
	19: "dziewiętnaście",

	20: "dwadzieścia",
	30: "trzydzieści",
	40: "czterdzieści",
	50: "pięćdziesiąt",
	60: "sześćdziesiąt",
	70: "siedemdziesiąt",
	80: "osiemdziesiąt",
	90: "dziewięćdziesiąt",

	100: "sto",
	200: "dwieście",
	300: "trzysta",
	400: "czterysta",
	500: "pięćset",
	600: "sześćset",
	700: "siedemset",
	800: "osiemset",
	900: "dziewięćset",
}

// GrammaticalForm is the set of inflected forms a noun needs to agree with
// a preceding numeral.
type GrammaticalForm struct {
	NominativeSingular string `json:"nom_sg" yaml:"nom_sg"`
	NominativePlural   string `json:"nom_pl" yaml:"nom_pl"`
	GenitivePlural     string `json:"gen_pl" yaml:"gen_pl"`
}

// NewForm is shorthand for building a GrammaticalForm literal.
func NewForm(nomSg, nomPl, genPl string) *GrammaticalForm {
	return &GrammaticalForm{NominativeSingular: nomSg, NominativePlural: nomPl, GenitivePlural: genPl}
}

// Valid reports whether all three forms are present.
func (f GrammaticalForm) Valid() bool {
	return f.NominativeSingular != "" && f.NominativePlural != "" && f.GenitivePlural != ""
}

// scales runs from the largest magnitude (10^75) down to the units group,
// which carries no scale name.
var scales = []*GrammaticalForm{
	NewForm("duodecyliard", "duodecyliardy", "duodecyliardów"),
	NewForm("duodecylion", "duodecyliony", "duodecylionów"),
	NewForm("undecyliard", "undecyliardy", "undecyliardów"),
	NewForm("undecylion", "undecyliony", "undecylionów"),
	NewForm("decyliard", "decyliardy", "decyliardów"),
	NewForm("decylion", "decyliony", "decylionów"),
	NewForm("noniliard", "noniliardy", "noniliardów"),
	NewForm("nonilion", "noniliony", "nonilionów"),
	NewForm("oktyliard", "oktyliardy", "oktyliardów"),
	NewForm("oktylion", "oktyliony", "oktylionów"),
	NewForm("septyliard", "septyliardy", "septyliardów"),
	NewForm("septylion", "septyliony", "septylionów"),
	NewForm("sekstyliard", "sekstyliardy", "sekstyliardów"),
	NewForm("sekstylion", "sekstyliony", "sekstylionów"),
	NewForm("kwintyliard", "kwintyliardy", "kwintyliardów"),
	NewForm("kwintylion", "kwintyliony", "kwintylionów"),
	NewForm("kwadryliard", "kwadryliardy", "kwadryliardów"),
	NewForm("kwadrylion", "kwadryliony", "kwadrylionów"),
	NewForm("tryliard", "tryliardy", "tryliardów"),
	NewForm("trylion", "tryliony", "trylionów"),
	NewForm("biliard", "biliardy", "biliardów"),
	NewForm("bilion", "biliony", "bilionów"),
	NewForm("miliard", "miliardy", "miliardów"),
	NewForm("milion", "miliony", "milionów"),
	NewForm("tysiąc", "tysiące", "tysięcy"),
	nil,
}

// MaxGroups is the number of base-1000 groups the scale table can name.
const MaxGroups = 26

// BaseWord returns the word for a lookup key produced by DisassembleGroup.
func BaseWord(key int) (string, bool) {
	w, ok := baseWords[key]
	return w, ok
}

// Scale returns a copy of the scale name used for the group at position
// pos counted from the right (0 is the units group, 1 thousands, ...).
// It returns nil for the units group and for positions out of range.
func Scale(pos int) *GrammaticalForm {
	if pos < 0 || pos >= len(scales) {
		return nil
	}
	f := scales[len(scales)-1-pos]
	if f == nil {
		return nil
	}
	c := *f
	return &c
}
