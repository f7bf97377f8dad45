package shell

import "bytes"

// collector buffers command output up to a byte cap. Writes past the
// cap are acknowledged but dropped, so a chatty command cannot grow the
// observation unbounded.
type collector struct {
	buffer   bytes.Buffer
	maxBytes int
}

func newCollector(maxBytes int) *collector {
	return &collector{maxBytes: maxBytes}
}

func (c *collector) Write(p []byte) (int, error) {
	remaining := c.maxBytes - c.buffer.Len()
	if remaining <= 0 {
		return len(p), nil
	}

	toWrite := p
	if len(toWrite) > remaining {
		toWrite = toWrite[:remaining]
	}

	if _, err := c.buffer.Write(toWrite); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (c *collector) String() string {
	return c.buffer.String()
}
