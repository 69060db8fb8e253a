package comm

// Parser parses frame bytes received on the board side.
type Parser struct {
	state  parseState
	frame  *Frame
	recvN  int
	errors int
}

// ParseResult indicates the result after one parsing step.
type ParseResult struct {
	// Frame is set when a complete frame has been parsed.
	Frame *Frame
	// Dropped is true when the byte didn't fit the frame layout
	// and the parser is hunting for a header again.
	Dropped bool
}

type parseState int

const (
	stateHeader0 parseState = iota // waiting for 0xFF
	stateHeader1                   // waiting for 0xF9
	stateCode                      // waiting for command code
	stateCount                     // waiting for param count
	stateParams                    // waiting for params
)

// Receiving indicates the parser is in the middle of a frame.
func (p *Parser) Receiving() bool {
	return p.state != stateHeader0
}

// Errors returns the number of dropped bytes since creation.
func (p *Parser) Errors() int {
	return p.errors
}

// Reset drops any partial frame.
func (p *Parser) Reset() {
	p.state, p.frame, p.recvN = stateHeader0, nil, 0
}

// Parse consumes one byte.
func (p *Parser) Parse(b byte) (pr ParseResult) {
	switch p.state {
	case stateHeader0:
		if b != HeaderByte0 {
			return p.drop()
		}
		p.state = stateHeader1
	case stateHeader1:
		switch b {
		case HeaderByte1:
			p.state = stateCode
		case HeaderByte0:
			// repeated 0xFF, still a valid start.
		default:
			return p.drop()
		}
	case stateCode:
		p.frame = &Frame{Code: b}
		p.state = stateCount
	case stateCount:
		if int(b) > MaxParams {
			return p.drop()
		}
		if b == 0 {
			return p.frameReady()
		}
		p.frame.Params, p.recvN = make([]byte, b), 0
		p.state = stateParams
	case stateParams:
		p.frame.Params[p.recvN] = b
		p.recvN++
		if p.recvN >= len(p.frame.Params) {
			return p.frameReady()
		}
	}
	return
}

// ParseBytes consumes all bytes and returns completed frames.
func (p *Parser) ParseBytes(data []byte) (frames []*Frame) {
	for _, b := range data {
		if pr := p.Parse(b); pr.Frame != nil {
			frames = append(frames, pr.Frame)
		}
	}
	return
}

func (p *Parser) drop() ParseResult {
	p.Reset()
	p.errors++
	return ParseResult{Dropped: true}
}

func (p *Parser) frameReady() (pr ParseResult) {
	pr.Frame, p.frame = p.frame, nil
	p.state, p.recvN = stateHeader0, 0
	return
}
