// Package richtext applies structured formatting commands to a Markdown document.
//
// A Document is plain Markdown text plus a selection expressed in rune offsets.
// Apply performs one command as a single edit and returns the new document with
// the selection moved onto the affected text, so that applying a toggling command
// twice restores the original.
package richtext

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// Command names a toolbar action.
type Command string

const (
	H1            Command = "h1"
	H2            Command = "h2"
	H3            Command = "h3"
	Bold          Command = "bold"
	Italic        Command = "italic"
	Underline     Command = "underline"
	Code          Command = "code"
	Warning       Command = "warning"
	Link          Command = "link"
	OrderedList   Command = "ol"
	UnorderedList Command = "ul"
	Image         Command = "image"
	Quote         Command = "quote"
	HR            Command = "hr"
)

// Commands lists every command in toolbar order.
var Commands = []Command{H1, H2, H3, Bold, Italic, Underline, Code, Warning, Link, OrderedList, UnorderedList, Image, Quote, HR}

var (
	// ErrNeedsURL is returned by Apply(Link) when the selection is not a URL.
	// The caller should ask for a destination and call ApplyLink.
	ErrNeedsURL = errors.New("link destination required")
	// ErrNeedsImage is returned by Apply(Image). The caller should upload a file
	// and call InsertImage with the resulting URL.
	ErrNeedsImage = errors.New("image source required")
	// ErrUnknownCommand is returned for commands Apply does not know.
	ErrUnknownCommand = errors.New("unknown command")
)

// WarningMarker is the first line of a warning callout.
const WarningMarker = "> [!WARNING]"

var (
	urlPattern     = regexp.MustCompile(`^https?://\S+$`)
	linkPattern    = regexp.MustCompile(`\[([^\]\n]*)\]\(([^)\s]*)\)`)
	headingPattern = regexp.MustCompile(`^#{1,6} `)
	olPattern      = regexp.MustCompile(`^\d+\. `)
)

// Selection is a half-open range of rune offsets. Start == End is a cursor.
type Selection struct {
	Start int
	End   int
}

// Empty reports whether the selection is a bare cursor.
func (s Selection) Empty() bool { return s.Start == s.End }

// Document is the editable content plus its selection.
type Document struct {
	Text string
	Sel  Selection
}

// Selected returns the selected text.
func (d Document) Selected() string {
	r := []rune(d.Text)
	sel := d.normalized(len(r))
	return string(r[sel.Start:sel.End])
}

func (d Document) normalized(n int) Selection {
	s, e := d.Sel.Start, d.Sel.End
	if s > e {
		s, e = e, s
	}
	return Selection{Start: clamp(s, 0, n), End: clamp(e, 0, n)}
}

// Apply runs one command against the document.
func Apply(doc Document, cmd Command) (Document, error) {
	r := []rune(doc.Text)
	doc.Sel = doc.normalized(len(r))

	switch cmd {
	case H1:
		return heading(doc, 1), nil
	case H2:
		return heading(doc, 2), nil
	case H3:
		return heading(doc, 3), nil
	case Bold:
		return toggleWrap(doc, "**", "**"), nil
	case Italic:
		return toggleWrap(doc, "_", "_"), nil
	case Underline:
		return toggleWrap(doc, "<u>", "</u>"), nil
	case Code:
		return toggleFence(doc), nil
	case Warning:
		return toggleWarning(doc), nil
	case Quote:
		return toggleQuote(doc), nil
	case OrderedList:
		return toggleList(doc, true), nil
	case UnorderedList:
		return toggleList(doc, false), nil
	case HR:
		return insertRule(doc), nil
	case Link:
		if out, ok := unlink(doc); ok {
			return out, nil
		}
		sel := strings.TrimSpace(doc.Selected())
		if urlPattern.MatchString(sel) {
			return ApplyLink(doc, sel), nil
		}
		return doc, ErrNeedsURL
	case Image:
		return doc, ErrNeedsImage
	default:
		return doc, ErrUnknownCommand
	}
}

// ApplyLink turns the selection into a link to url. An empty url is a no-op.
func ApplyLink(doc Document, url string) Document {
	url = strings.TrimSpace(url)
	if url == "" {
		return doc
	}
	r := []rune(doc.Text)
	sel := doc.normalized(len(r))
	label := string(r[sel.Start:sel.End])
	if label == "" {
		label = url
	}
	insert := "[" + label + "](" + url + ")"
	start := sel.Start + 1
	return replace(r, sel.Start, sel.End, insert, start, start+runeLen(label))
}

// InsertImage inserts an image reference at the cursor, replacing any selection.
func InsertImage(doc Document, url string) Document {
	url = strings.TrimSpace(url)
	if url == "" {
		return doc
	}
	r := []rune(doc.Text)
	sel := doc.normalized(len(r))
	alt := strings.TrimSpace(string(r[sel.Start:sel.End]))
	if alt == "" || strings.Contains(alt, "\n") {
		alt = "Image"
	}
	insert := "![" + alt + "](" + url + ")"
	end := sel.Start + runeLen(insert)
	return replace(r, sel.Start, sel.End, insert, end, end)
}

func toggleWrap(doc Document, open, closing string) Document {
	r := []rune(doc.Text)
	s, e := doc.Sel.Start, doc.Sel.End
	o, c := runeLen(open), runeLen(closing)
	selected := string(r[s:e])

	if e-s >= o+c && strings.HasPrefix(selected, open) && strings.HasSuffix(selected, closing) {
		inner := []rune(selected)[o : e-s-c]
		return replace(r, s, e, string(inner), s, s+len(inner))
	}
	if s >= o && e+c <= len(r) && string(r[s-o:s]) == open && string(r[e:e+c]) == closing {
		return replace(r, s-o, e+c, selected, s-o, e-o)
	}
	return replace(r, s, e, open+selected+closing, s+o, e+o)
}

func heading(doc Document, level int) Document {
	marker := strings.Repeat("#", level) + " "
	return editLines(doc, func(lines []string) []string {
		if headingPattern.MatchString(lines[0]) {
			for i, line := range lines {
				lines[i] = headingPattern.ReplaceAllString(line, "")
			}
			return lines
		}
		for i, line := range lines {
			lines[i] = marker + line
		}
		return lines
	})
}

func toggleQuote(doc Document) Document {
	return editLines(doc, func(lines []string) []string {
		if allLines(lines, isQuoted) {
			for i, line := range lines {
				lines[i] = unquote(line)
			}
			return lines
		}
		for i, line := range lines {
			lines[i] = "> " + line
		}
		return lines
	})
}

func toggleList(doc Document, ordered bool) Document {
	return editLines(doc, func(lines []string) []string {
		if ordered && allLines(lines, olPattern.MatchString) {
			for i, line := range lines {
				lines[i] = olPattern.ReplaceAllString(line, "")
			}
			return lines
		}
		if !ordered && allLines(lines, func(l string) bool { return strings.HasPrefix(l, "- ") }) {
			for i, line := range lines {
				lines[i] = strings.TrimPrefix(line, "- ")
			}
			return lines
		}
		for i, line := range lines {
			if ordered {
				lines[i] = strconv.Itoa(i+1) + ". " + line
			} else {
				lines[i] = "- " + line
			}
		}
		return lines
	})
}

func toggleWarning(doc Document) Document {
	r := []rune(doc.Text)
	lines := strings.Split(string(r), "\n")
	first, last := lineIndex(r, doc.Sel.Start), lineIndex(r, selEndForLines(r, doc.Sel))

	start := first
	for start > 0 && isQuoted(lines[start]) && strings.TrimSpace(lines[start]) != WarningMarker {
		start--
	}
	if strings.TrimSpace(lines[start]) == WarningMarker {
		end := start + 1
		for end < len(lines) && isQuoted(lines[end]) && strings.TrimSpace(lines[end]) != WarningMarker {
			end++
		}
		if last < end {
			inner := make([]string, 0, end-start-1)
			for _, line := range lines[start+1 : end] {
				inner = append(inner, unquote(line))
			}
			from := lineStart(lines, start)
			to := lineStart(lines, end-1) + runeLen(lines[end-1])
			body := strings.Join(inner, "\n")
			return replace(r, from, to, body, from, from+runeLen(body))
		}
	}

	return editLines(doc, func(lines []string) []string {
		out := make([]string, 0, len(lines)+1)
		out = append(out, WarningMarker)
		for _, line := range lines {
			out = append(out, "> "+line)
		}
		return out
	})
}

func toggleFence(doc Document) Document {
	r := []rune(doc.Text)
	lines := strings.Split(string(r), "\n")
	first, last := lineIndex(r, doc.Sel.Start), lineIndex(r, selEndForLines(r, doc.Sel))

	open := -1
	for i, line := range lines {
		if !strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		if open < 0 {
			open = i
			continue
		}
		if open <= first && last <= i {
			inner := lines[open+1 : i]
			from := lineStart(lines, open)
			to := lineStart(lines, i) + runeLen(lines[i])
			body := strings.Join(inner, "\n")
			return replace(r, from, to, body, from, from+runeLen(body))
		}
		open = -1
	}

	s, e := doc.Sel.Start, doc.Sel.End
	prefix, suffix := "```\n", "\n```"
	if s > 0 && r[s-1] != '\n' {
		prefix = "\n" + prefix
	}
	if e < len(r) && r[e] != '\n' {
		suffix += "\n"
	}
	selected := string(r[s:e])
	start := s + runeLen(prefix)
	return replace(r, s, e, prefix+selected+suffix, start, start+runeLen(selected))
}

func insertRule(doc Document) Document {
	r := []rune(doc.Text)
	at := doc.Sel.End
	prefix := ""
	switch {
	case at == 0:
	case r[at-1] != '\n':
		prefix = "\n\n"
	case at > 1 && r[at-2] != '\n':
		prefix = "\n"
	}
	insert := prefix + "---\n"
	end := at + runeLen(insert)
	return replace(r, at, at, insert, end, end)
}

func unlink(doc Document) (Document, bool) {
	r := []rune(doc.Text)
	lines := strings.Split(string(r), "\n")
	idx := lineIndex(r, doc.Sel.Start)
	if lineIndex(r, doc.Sel.End) != idx {
		return doc, false
	}
	line := lines[idx]
	base := lineStart(lines, idx)
	for _, m := range linkPattern.FindAllStringSubmatchIndex(line, -1) {
		if m[0] > 0 && line[m[0]-1] == '!' {
			continue
		}
		from := base + runeLen(line[:m[0]])
		to := base + runeLen(line[:m[1]])
		if doc.Sel.Start < from || doc.Sel.End > to {
			continue
		}
		label := line[m[2]:m[3]]
		return replace(r, from, to, label, from, from+runeLen(label)), true
	}
	return doc, false
}

// editLines rewrites every line touched by the selection. A bare cursor edits
// the line it sits on. The cursor keeps its column; a range selection is
// widened to the rewritten lines.
func editLines(doc Document, fn func([]string) []string) Document {
	r := []rune(doc.Text)
	lines := strings.Split(string(r), "\n")
	first, last := lineIndex(r, doc.Sel.Start), lineIndex(r, selEndForLines(r, doc.Sel))

	block := append([]string(nil), lines[first:last+1]...)
	before := strings.Join(block, "\n")
	after := strings.Join(fn(block), "\n")

	from := lineStart(lines, first)
	to := from + runeLen(before)
	if doc.Sel.Empty() {
		oldLen := runeLen(before)
		newLen := runeLen(after)
		cursor := clamp(doc.Sel.Start+newLen-oldLen, from, from+newLen)
		return replace(r, from, to, after, cursor, cursor)
	}
	return replace(r, from, to, after, from, from+runeLen(after))
}

// selEndForLines excludes a trailing newline from a multi-line selection so the
// following line is not edited.
func selEndForLines(r []rune, sel Selection) int {
	if sel.End > sel.Start && sel.End > 0 && r[sel.End-1] == '\n' {
		return sel.End - 1
	}
	return sel.End
}

func replace(r []rune, from, to int, insert string, selStart, selEnd int) Document {
	out := make([]rune, 0, len(r)-(to-from)+runeLen(insert))
	out = append(out, r[:from]...)
	out = append(out, []rune(insert)...)
	out = append(out, r[to:]...)
	return Document{Text: string(out), Sel: Selection{Start: selStart, End: selEnd}}
}

func isQuoted(line string) bool { return strings.HasPrefix(line, ">") }

func unquote(line string) string {
	line = strings.TrimPrefix(line, ">")
	return strings.TrimPrefix(line, " ")
}

func allLines(lines []string, fn func(string) bool) bool {
	for _, line := range lines {
		if !fn(line) {
			return false
		}
	}
	return true
}

func lineIndex(r []rune, offset int) int {
	n := 0
	for i := 0; i < offset && i < len(r); i++ {
		if r[i] == '\n' {
			n++
		}
	}
	return n
}

func lineStart(lines []string, idx int) int {
	offset := 0
	for i := 0; i < idx; i++ {
		offset += runeLen(lines[i]) + 1
	}
	return offset
}

func runeLen(s string) int { return len([]rune(s)) }

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
