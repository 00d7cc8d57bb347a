package metadata

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shmod-labs/shmod/internal/module"
	"github.com/spf13/afero"
	"mvdan.cc/sh/v3/syntax"
)

// maxRead bounds how much of a module file is inspected.
const maxRead = 64 << 10

var labelPattern = regexp.MustCompile(`^(Description|Author|Version|Dependencies)\s*:(.*)$`)

// Extract returns the metadata declared in the header of the file at path.
// It never fails; see the package documentation.
func Extract(fs afero.Fs, path string, kind module.Kind) (md module.Metadata) {
	defer func() {
		if r := recover(); r != nil {
			md = module.Metadata{Degraded: true, Reason: fmt.Sprintf("extractor panic: %v", r)}
		}
	}()

	data, err := readHead(fs, path)
	if err != nil {
		return module.Metadata{Degraded: true, Reason: err.Error()}
	}
	return ExtractBytes(data, kind)
}

// ExtractBytes runs the extraction over already-read file content.
func ExtractBytes(data []byte, kind module.Kind) module.Metadata {
	if bytes.IndexByte(data, 0) >= 0 {
		return module.Metadata{Degraded: true, Reason: "binary content"}
	}

	md := scanHeader(data)
	if md.Description == "" && kind.Valid() {
		md.Description = aboutDescription(data, kind.AboutHook())
	}
	return md
}

func readHead(fs afero.Fs, path string) ([]byte, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxRead))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// scanHeader walks the leading comment block. Blank lines do not end the
// block; the first line that is neither blank nor a comment does.
func scanHeader(data []byte) module.Metadata {
	var md module.Metadata
	seen := make(map[string]bool, 4)
	var problems []string

	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 4096), maxRead)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "#") {
			break
		}
		body := strings.TrimSpace(strings.TrimLeft(line, "#"))
		m := labelPattern.FindStringSubmatch(body)
		if m == nil {
			continue
		}
		label, value := m[1], strings.TrimSpace(m[2])
		if seen[label] {
			continue
		}
		seen[label] = true

		if !wellFormed(value) {
			problems = append(problems, "malformed "+label)
			continue
		}
		switch label {
		case "Description":
			md.Description = value
		case "Author":
			md.Author = value
		case "Version":
			md.Version = value
		case "Dependencies":
			md.Dependencies = splitDependencies(value)
		}
	}
	// A line longer than the read window ends the header like code would.
	if err := sc.Err(); err != nil && !errors.Is(err, bufio.ErrTooLong) {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		md.Degraded = true
		md.Reason = strings.Join(problems, "; ")
	}
	return md
}

func wellFormed(value string) bool {
	if value == "" || !utf8.ValidString(value) {
		return false
	}
	for _, r := range value {
		if unicode.IsControl(r) && r != '\t' {
			return false
		}
	}
	return true
}

func splitDependencies(value string) []string {
	fields := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	seen := make(map[string]bool, len(fields))
	var deps []string
	for _, f := range fields {
		if seen[f] {
			continue
		}
		seen[f] = true
		deps = append(deps, f)
	}
	return deps
}

// aboutDescription finds a top-level composure call such as
// `about-plugin 'Git helpers'` and returns its first literal argument.
// Files that do not parse as shell yield "".
func aboutDescription(data []byte, hook string) string {
	if hook == "" {
		return ""
	}
	file, err := syntax.NewParser(syntax.KeepComments(false)).Parse(bytes.NewReader(data), "")
	if err != nil {
		return ""
	}
	for _, stmt := range file.Stmts {
		call, ok := stmt.Cmd.(*syntax.CallExpr)
		if !ok || len(call.Args) < 2 {
			continue
		}
		if name, ok := wordText(call.Args[0]); !ok || name != hook {
			continue
		}
		if text, ok := wordText(call.Args[1]); ok && wellFormed(strings.TrimSpace(text)) {
			return strings.TrimSpace(text)
		}
		return ""
	}
	return ""
}

// wordText returns the value of a word built only from literals and quoted
// literals. Words with expansions are rejected.
func wordText(w *syntax.Word) (string, bool) {
	var sb strings.Builder
	for _, part := range w.Parts {
		switch p := part.(type) {
		case *syntax.Lit:
			sb.WriteString(p.Value)
		case *syntax.SglQuoted:
			sb.WriteString(p.Value)
		case *syntax.DblQuoted:
			for _, inner := range p.Parts {
				lit, ok := inner.(*syntax.Lit)
				if !ok {
					return "", false
				}
				sb.WriteString(lit.Value)
			}
		default:
			return "", false
		}
	}
	return sb.String(), true
}
