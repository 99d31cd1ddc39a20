package exporter

import (
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"pdpfeed/internal/model"
)

const (
	delimiter = ";"
	// The importer's format was produced by a writer that terminates rows
	// with CRLF on every platform.
	rowTerminator = "\r\n"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// The importer rejects quoted fields, so instead of quoting, the three quote
// characters that break its line format are deleted from every value. Lossy
// for apostrophes in product names, but required for compatibility.
var quoteStripper = strings.NewReplacer(`"`, "", `'`, "", "”", "")

// escaper handles characters that would otherwise need quoting: the
// delimiter, the escape character itself and line breaks get a backslash
// prefix, matching an escape-based rather than quote-based containment
// policy.
var escaper = strings.NewReplacer(
	`\`, `\\`,
	delimiter, `\`+delimiter,
	"\n", `\`+"\n",
	"\r", `\`+"\r",
)

// WriteFeed serializes records to path as semicolon-delimited UTF-8 text with
// a byte-order marker and the fixed column header. Nil entries (failed URLs)
// are skipped. With appendMode set and an existing target, the header is not
// rewritten and rows are added at the end. Returns the number of rows
// written.
func WriteFeed(records []*model.Record, path string, appendMode bool) (int, error) {
	exists := false
	if _, err := os.Stat(path); err == nil {
		exists = true
	}
	appending := appendMode && exists

	flags := os.O_WRONLY | os.O_CREATE
	if appending {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return 0, fmt.Errorf("open output file %s: %w", path, err)
	}

	var sb strings.Builder
	if !appending {
		sb.Write(utf8BOM)
		sb.WriteString(strings.Join(model.Columns, delimiter) + rowTerminator)
	}

	written := 0
	for _, rec := range records {
		if rec == nil {
			continue
		}
		fields := rec.Row()
		for i, v := range fields {
			fields[i] = escaper.Replace(quoteStripper.Replace(v))
		}
		sb.WriteString(strings.Join(fields, delimiter) + rowTerminator)
		written++
	}

	if _, err := f.WriteString(sb.String()); err != nil {
		f.Close()
		return 0, fmt.Errorf("write output file %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("close output file %s: %w", path, err)
	}

	log.WithFields(log.Fields{
		"file":  path,
		"count": written,
	}).Info("records saved")

	// Second pass over the finished file, catching quote characters that
	// entered through delimiter-unaware paths.
	if err := CleanFile(path); err != nil {
		log.WithError(err).Warn("post-write clean pass failed")
	}

	return written, nil
}

// CleanFile re-reads path line by line, strips the same three quote
// characters from every line and rewrites the file in place.
func CleanFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	lines := strings.Split(string(b), "\n")
	for i, line := range lines {
		lines[i] = quoteStripper.Replace(line)
	}

	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0644); err != nil {
		return fmt.Errorf("rewrite %s: %w", path, err)
	}

	log.WithField("file", path).Info("quote characters stripped")
	return nil
}
