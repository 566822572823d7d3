package polarbars

import (
	"bytes"
	"io"

	"github.com/csimplestring/go-csv/detector"
)

// DetermineDelimiter returns the single most likely rune that would delimit the
// values in the reader, assuming a CSV-like file.
func DetermineDelimiter(r io.Reader) rune {
	d := detector.New()
	delimiters := d.DetectDelimiter(r, '"')

	if len(delimiters) > 0 && len(delimiters[0]) > 0 {
		return rune(delimiters[0][0])
	}

	return ','
}

// DetermineDelimiterFromSample is DetermineDelimiter for data that has already
// been buffered. Tabs win outright when the header line contains one, since
// the detector needs several lines to be confident and short tables are
// common here.
func DetermineDelimiterFromSample(sample []byte) rune {
	firstLine := sample
	if idx := bytes.IndexByte(sample, '\n'); idx >= 0 {
		firstLine = sample[:idx]
	}
	if bytes.IndexByte(firstLine, '\t') >= 0 {
		return '\t'
	}

	return DetermineDelimiter(bytes.NewReader(sample))
}
