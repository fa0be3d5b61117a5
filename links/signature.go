package links

// Signature maps a lowercase keyword to the Programiz compiler that serves it.
type Signature struct {
	Keyword string
	Slug    string
	Label   string
}

// signatures is walked in order and the first keyword found wins, so longer
// or more specific keywords must come before any keyword they contain
// ("javascript" before "java", "c++" before any bare "c" handling).
var signatures = []Signature{
	{"c++", "cpp-programming", "C++"},
	{"cpp", "cpp-programming", "C++"},
	{"c#", "csharp", "C#"},
	{"c sharp", "csharp", "C#"},
	{".net", "csharp", "C#"},
	{"javascript", "javascript", "JavaScript"},
	{"typescript", "typescript", "TypeScript"},
	{"java", "java-programming", "Java"},
	{"python", "python-programming", "Python"},
	{"html", "html-css", "HTML/CSS"},
	{"css", "html-css", "HTML/CSS"},
	{"php", "php", "PHP"},
	{"sql", "sql", "SQL"},
	{"r programming", "r-programming", "R"},
	{"ruby", "ruby", "Ruby"},
	{"kotlin", "kotlin", "Kotlin"},
	{"swift", "swift", "Swift"},
	{"golang", "golang", "Go"},
	{"go lang", "golang", "Go"},
	{"rust", "rust", "Rust"},
	{"dart", "dart", "Dart"},
	{"scala", "scala", "Scala"},
}

// plainC is used only when no signature matched. A bare "c" appears inside
// too many unrelated words, so these phrases are required instead.
var plainC = Signature{Keyword: "c", Slug: "c-programming", Label: "C"}

var plainCPhrases = []string{
	"c program",
	"c language",
	"programming in c ",
	"basic c ",
	" in c.",
	" in c,",
	" using c",
	"through c ",
	"with c ",
	"c coding",
}

// Signatures returns a copy of the ordered signature table.
func Signatures() []Signature {
	out := make([]Signature, len(signatures))
	copy(out, signatures)
	return out
}
