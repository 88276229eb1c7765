package lexer

// FromTokens returns a Lexer over a fixed sequence of tokens.
//
// An EOF token is synthesized after the last token when the sequence doesn't end with
// one.
func FromTokens(tokens ...Token) Lexer {
	return &tokensLexer{tokens: tokens}
}

// FromTerminals returns a Lexer emitting one token per terminal name, the token text
// being the name itself. Positions are on line 1, one column per token.
func FromTerminals(terminals ...string) Lexer {
	tokens := make([]Token, len(terminals))
	for i, terminal := range terminals {
		tokens[i] = Token{
			Terminal: terminal,
			Value:    terminal,
			Pos:      Position{Offset: i, Line: 1, Column: i + 1},
		}
	}
	return FromTokens(tokens...)
}

type tokensLexer struct {
	tokens []Token
	cursor int
}

func (l *tokensLexer) Next() (Token, error) {
	if l.cursor >= len(l.tokens) {
		pos := Position{Line: 1, Column: 1}
		if n := len(l.tokens); n > 0 {
			pos = l.tokens[n-1].Pos
			pos.Offset += len(l.tokens[n-1].Value)
			pos.Column += len(l.tokens[n-1].Value)
		}
		return EOFToken(pos), nil
	}
	token := l.tokens[l.cursor]
	if !token.EOF() {
		l.cursor++
	}
	return token, nil
}
