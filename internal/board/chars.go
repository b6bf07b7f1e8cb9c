package board

// Character classes supported by layouts.
const (
	LowercaseChars   = "abcdefghijklmnopqrstuvwxyz"
	UppercaseChars   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	DigitChars       = "0123456789"
	PunctuationChars = "`-=[]\\;',./~!@#$%^&*()_+{}|:\"<>? \t\n"
)

// TypableChars is the full character set a layout may be asked to cover.
const TypableChars = LowercaseChars + UppercaseChars +
	"`1234567890-=[]\\;',./" +
	"~!@#$%^&*()_+{}|:\"<>?" +
	" \t\n"
