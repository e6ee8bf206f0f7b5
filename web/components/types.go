package components

const inputClass = "rounded-md border border-slate-300 px-3 py-2 text-sm shadow-sm focus:border-slate-500 focus:outline-none"

// FormDefaults pre-fills the generator form on the home page.
type FormDefaults struct {
	Text       string
	Style      string
	Foreground string
	Background string
	Gradient   string
	Gradient2  string
	Level      string
	Size       int
}

// Option is one entry of a select input.
type Option struct {
	Value string
	Label string
}

var StyleOptions = []Option{
	{"squares", "Squares"},
	{"circles", "Circles"},
	{"rounded", "Rounded squares"},
	{"continuous", "Continuous"},
	{"bars-horizontal", "Horizontal bars"},
	{"bars-vertical", "Vertical bars"},
}

var GradientOptions = []Option{
	{"none", "None"},
	{"horizontal", "Horizontal"},
	{"vertical", "Vertical"},
	{"diagonal", "Diagonal"},
	{"rainbow", "Rainbow"},
}

var LevelOptions = []Option{
	{"L", "L (7%)"},
	{"M", "M (15%)"},
	{"Q", "Q (25%)"},
	{"H", "H (30%)"},
}

var FormatOptions = []Option{
	{"png", "PNG"},
	{"jpg", "JPEG"},
	{"svg", "SVG"},
}
