package formats

import (
	"bytes"
	"fmt"
)

// Locator finds metadata payloads inside one container format.
type Locator interface {
	Locate(data []byte) (*Container, error)
}

var locators = map[Format]Locator{}

// RegisterLocator registers the locator for a format.
func RegisterLocator(format Format, l Locator) {
	locators[format] = l
}

// Locate sniffs data and delegates to the registered locator.
func Locate(data []byte) (*Container, error) {
	format := Sniff(data)
	l, ok := locators[format]
	if !ok {
		return nil, fmt.Errorf("%w: unrecognized file signature", ErrUnsupported)
	}
	c, err := l.Locate(data)
	if err != nil {
		return nil, err
	}
	c.Format = format
	return c, nil
}

// scanXMPPacket looks for a bare <?xpacket ...?> block anywhere in data.
func scanXMPPacket(data []byte) []byte {
	start := bytes.Index(data, []byte("<?xpacket begin="))
	if start < 0 {
		return nil
	}
	end := bytes.Index(data[start:], []byte("<?xpacket end="))
	if end < 0 {
		return nil
	}
	tail := bytes.Index(data[start+end:], []byte("?>"))
	if tail < 0 {
		return nil
	}
	return data[start : start+end+tail+2]
}
