package interfaces

// LineReader reads one line of user input at a time
type LineReader interface {
	// ReadLine blocks until a full line is available and returns it without the line terminator.
	// It returns io.EOF once the input is exhausted.
	ReadLine() (string, error)
}

// LineWriter writes one line of output at a time
type LineWriter interface {
	// WriteLine writes the text followed by a newline
	WriteLine(text string) error
}

// Console is the line-oriented capability a quote session talks to
type Console interface {
	LineReader
	LineWriter
}
