package at

const (
	// Terminal Control
	CR   = '\r'
	LF   = '\n'
	CRLF = "\r\n"

	// Structured result codes look like "+TAG: payload".
	Marker    = '+'
	Separator = ':'

	// Response Codes
	OK    = "OK"
	ERROR = "ERROR"

	// Commands
	CmdAt = "AT"

	// DefaultLineCapacity is the number of usable bytes in a line buffer.
	DefaultLineCapacity = 255
)

// Notification is an unsolicited result code consumed by Classify.
type Notification struct {
	// Line is the full line as received.
	Line string
	// Tag is the text between the marker and the separator of a structured
	// notification ("CREG" for "+CREG: 1,1"). Empty for bare keywords.
	Tag string
	// Payload is the trimmed text after the separator. Empty for bare keywords.
	Payload string
}

// Name returns the tag of a structured notification or the keyword of a bare one.
func (n Notification) Name() string {
	if n.Tag != "" {
		return n.Tag
	}
	return n.Line
}
