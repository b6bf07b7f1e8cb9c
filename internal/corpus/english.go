package corpus

// Relative letter frequencies of English text, per mille. Standard published
// counts, close to the Lewand/Cornell tables.
var englishChars = map[rune]float64{
	'e': 127, 't': 91, 'a': 82, 'o': 75, 'i': 70, 'n': 67, 's': 63,
	'h': 61, 'r': 60, 'd': 43, 'l': 40, 'c': 28, 'u': 28, 'm': 24,
	'w': 24, 'f': 22, 'g': 20, 'y': 20, 'p': 19, 'b': 15, 'v': 10,
	'k': 8, 'j': 2, 'x': 2, 'q': 1, 'z': 1,
}

// The most common English bigrams with rough relative counts.
var englishBigrams = map[Bigram]float64{
	{'t', 'h'}: 356, {'h', 'e'}: 307, {'i', 'n'}: 243, {'e', 'r'}: 205,
	{'a', 'n'}: 199, {'r', 'e'}: 185, {'o', 'n'}: 176, {'a', 't'}: 149,
	{'e', 'n'}: 145, {'n', 'd'}: 135, {'t', 'i'}: 134, {'e', 's'}: 134,
	{'o', 'r'}: 128, {'t', 'e'}: 120, {'o', 'f'}: 117, {'e', 'd'}: 117,
	{'i', 's'}: 113, {'i', 't'}: 112, {'a', 'l'}: 109, {'a', 'r'}: 107,
	{'s', 't'}: 105, {'t', 'o'}: 104, {'n', 't'}: 104, {'n', 'g'}: 95,
	{'s', 'e'}: 93, {'h', 'a'}: 93, {'a', 's'}: 87, {'o', 'u'}: 87,
	{'i', 'o'}: 83, {'l', 'e'}: 83, {'v', 'e'}: 83, {'c', 'o'}: 79,
	{'m', 'e'}: 79, {'d', 'e'}: 76, {'h', 'i'}: 76, {'r', 'i'}: 73,
	{'r', 'o'}: 73, {'i', 'c'}: 70, {'n', 'e'}: 69, {'e', 'a'}: 69,
	{'r', 'a'}: 69, {'c', 'e'}: 65, {'l', 'i'}: 62, {'c', 'h'}: 60,
	{'l', 'l'}: 58, {'b', 'e'}: 58, {'m', 'a'}: 57, {'s', 'i'}: 55,
	{'o', 'm'}: 55, {'u', 'r'}: 54,
}

// English returns a built-in corpus over the lowercase letters, built from
// published English letter and bigram frequency tables. Useful when no text
// corpus is supplied.
func English() *Corpus {
	c, err := FromFrequencies(englishChars, englishBigrams)
	if err != nil {
		// The tables are compile-time constants with positive mass.
		panic(err)
	}
	return c
}
