package history

// bashGrammar reads bash-style history: every physical line is a command.
// Lines such as "#1616420000" are kept as ordinary commands.
type bashGrammar struct{}

func (bashGrammar) normalize(line []byte) []byte { return line }

func (bashGrammar) begin(line string) (Record, bool) {
	return Record{Kind: RecordPlain, Text: line}, false
}
