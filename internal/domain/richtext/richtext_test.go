package richtext

import (
	"errors"
	"testing"
)

func doc(text string, start, end int) Document {
	return Document{Text: text, Sel: Selection{Start: start, End: end}}
}

func TestApplyWrapCommands(t *testing.T) {
	tests := []struct {
		name    string
		cmd     Command
		in      Document
		want    string
		wantSel Selection
	}{
		{name: "bold", cmd: Bold, in: doc("hello world", 6, 11), want: "hello **world**", wantSel: Selection{8, 13}},
		{name: "italic", cmd: Italic, in: doc("hello world", 0, 5), want: "_hello_ world", wantSel: Selection{1, 6}},
		{name: "underline", cmd: Underline, in: doc("hello", 0, 5), want: "<u>hello</u>", wantSel: Selection{3, 8}},
		{name: "bold cursor", cmd: Bold, in: doc("ab", 1, 1), want: "a****b", wantSel: Selection{3, 3}},
		{name: "bold selection with markers", cmd: Bold, in: doc("x **y** z", 2, 7), want: "x y z", wantSel: Selection{2, 3}},
		{name: "reversed selection", cmd: Italic, in: doc("hello", 5, 0), want: "_hello_", wantSel: Selection{1, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(tt.in, tt.cmd)
			if err != nil {
				t.Fatalf("Apply() error = %v", err)
			}
			if got.Text != tt.want {
				t.Fatalf("Apply() text = %q, want %q", got.Text, tt.want)
			}
			if got.Sel != tt.wantSel {
				t.Fatalf("Apply() sel = %+v, want %+v", got.Sel, tt.wantSel)
			}
		})
	}
}

func TestToggleTwiceRestores(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		in   Document
	}{
		{name: "bold", cmd: Bold, in: doc("some bold text", 5, 9)},
		{name: "bold cursor", cmd: Bold, in: doc("abc", 1, 1)},
		{name: "italic", cmd: Italic, in: doc("abc", 0, 3)},
		{name: "underline", cmd: Underline, in: doc("under line", 0, 5)},
		{name: "h1", cmd: H1, in: doc("Title\nbody", 0, 5)},
		{name: "h2 cursor", cmd: H2, in: doc("Title", 2, 2)},
		{name: "h3", cmd: H3, in: doc("Title", 0, 5)},
		{name: "quote", cmd: Quote, in: doc("one\ntwo", 0, 7)},
		{name: "code", cmd: Code, in: doc("fmt.Println()", 0, 13)},
		{name: "code empty", cmd: Code, in: doc("", 0, 0)},
		{name: "warning", cmd: Warning, in: doc("careful\nnow", 0, 11)},
		{name: "warning empty", cmd: Warning, in: doc("", 0, 0)},
		{name: "ul", cmd: UnorderedList, in: doc("a\nb", 0, 3)},
		{name: "ol", cmd: OrderedList, in: doc("a\nb\nc", 0, 5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			once, err := Apply(tt.in, tt.cmd)
			if err != nil {
				t.Fatalf("first Apply() error = %v", err)
			}
			if once.Text == tt.in.Text {
				t.Fatalf("first Apply() did not change %q", tt.in.Text)
			}
			twice, err := Apply(once, tt.cmd)
			if err != nil {
				t.Fatalf("second Apply() error = %v", err)
			}
			if twice.Text != tt.in.Text {
				t.Fatalf("Apply twice = %q, want %q (after once: %q)", twice.Text, tt.in.Text, once.Text)
			}
		})
	}
}

func TestLineCommands(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		in   Document
		want string
	}{
		{name: "h1 prefixes line", cmd: H1, in: doc("Title", 0, 5), want: "# Title"},
		{name: "h2 on cursor line only", cmd: H2, in: doc("a\nTitle\nb", 3, 3), want: "a\n## Title\nb"},
		{name: "heading unwraps any level", cmd: H1, in: doc("### Title", 0, 0), want: "Title"},
		{name: "heading on empty line", cmd: H3, in: doc("", 0, 0), want: "### "},
		{name: "ol numbers lines", cmd: OrderedList, in: doc("a\nb", 0, 3), want: "1. a\n2. b"},
		{name: "ul prefixes lines", cmd: UnorderedList, in: doc("a\nb", 0, 3), want: "- a\n- b"},
		{name: "quote prefixes", cmd: Quote, in: doc("wise words", 0, 0), want: "> wise words"},
		{name: "quote unwraps", cmd: Quote, in: doc("> wise words", 4, 4), want: "wise words"},
		{name: "trailing newline excluded", cmd: UnorderedList, in: doc("a\nb\n", 0, 2), want: "- a\nb\n"},
		{name: "warning wraps", cmd: Warning, in: doc("careful", 0, 7), want: "> [!WARNING]\n> careful"},
		{name: "warning unwraps from body", cmd: Warning, in: doc("x\n> [!WARNING]\n> careful\ny", 17, 17), want: "x\ncareful\ny"},
		{name: "code fences mid line", cmd: Code, in: doc("run go test now", 4, 11), want: "run \n```\ngo test\n```\n now"},
		{name: "code unwraps inside fence", cmd: Code, in: doc("a\n```\nx := 1\n```\nb", 7, 7), want: "a\nx := 1\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(tt.in, tt.cmd)
			if err != nil {
				t.Fatalf("Apply() error = %v", err)
			}
			if got.Text != tt.want {
				t.Fatalf("Apply() = %q, want %q", got.Text, tt.want)
			}
		})
	}
}

func TestHeadingKeepsCursorColumn(t *testing.T) {
	got, err := Apply(doc("Title", 5, 5), H1)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if got.Sel != (Selection{7, 7}) {
		t.Fatalf("cursor = %+v, want end of line", got.Sel)
	}
}

func TestLink(t *testing.T) {
	t.Run("plain text needs url", func(t *testing.T) {
		in := doc("click here", 0, 5)
		got, err := Apply(in, Link)
		if !errors.Is(err, ErrNeedsURL) {
			t.Fatalf("expected ErrNeedsURL, got %v", err)
		}
		if got != in {
			t.Fatalf("document changed: %+v", got)
		}
		linked := ApplyLink(got, "https://example.com")
		if linked.Text != "[click](https://example.com) here" {
			t.Fatalf("ApplyLink() = %q", linked.Text)
		}
		if linked.Selected() != "click" {
			t.Fatalf("selection = %q, want label", linked.Selected())
		}
	})

	t.Run("url selection links to itself", func(t *testing.T) {
		got, err := Apply(doc("see https://go.dev", 4, 18), Link)
		if err != nil {
			t.Fatalf("Apply() error = %v", err)
		}
		if got.Text != "see [https://go.dev](https://go.dev)" {
			t.Fatalf("Apply() = %q", got.Text)
		}
	})

	t.Run("inside link unwraps", func(t *testing.T) {
		got, err := Apply(doc("a [docs](https://go.dev) b", 4, 4), Link)
		if err != nil {
			t.Fatalf("Apply() error = %v", err)
		}
		if got.Text != "a docs b" {
			t.Fatalf("Apply() = %q", got.Text)
		}
	})

	t.Run("image is not treated as link", func(t *testing.T) {
		_, err := Apply(doc("![alt](x.png)", 3, 3), Link)
		if !errors.Is(err, ErrNeedsURL) {
			t.Fatalf("expected ErrNeedsURL, got %v", err)
		}
	})

	t.Run("cancel is a no-op", func(t *testing.T) {
		in := doc("text", 0, 4)
		if got := ApplyLink(in, "  "); got != in {
			t.Fatalf("ApplyLink with empty url changed document: %+v", got)
		}
	})

	t.Run("cursor uses url as label", func(t *testing.T) {
		got := ApplyLink(doc("", 0, 0), "https://x.io")
		if got.Text != "[https://x.io](https://x.io)" {
			t.Fatalf("ApplyLink() = %q", got.Text)
		}
	})
}

func TestImage(t *testing.T) {
	in := doc("before after", 7, 7)
	got, err := Apply(in, Image)
	if !errors.Is(err, ErrNeedsImage) {
		t.Fatalf("expected ErrNeedsImage, got %v", err)
	}
	if got != in {
		t.Fatalf("Apply(Image) changed document")
	}

	inserted := InsertImage(in, "/api/images/untitled/cat.png")
	want := "before ![Image](/api/images/untitled/cat.png)after"
	if inserted.Text != want {
		t.Fatalf("InsertImage() = %q, want %q", inserted.Text, want)
	}
	if !inserted.Sel.Empty() || inserted.Sel.Start != 7+len("![Image](/api/images/untitled/cat.png)") {
		t.Fatalf("cursor = %+v", inserted.Sel)
	}
	if InsertImage(in, "") != in {
		t.Fatal("InsertImage with empty url should be a no-op")
	}
}

func TestHR(t *testing.T) {
	tests := []struct {
		name string
		in   Document
		want string
	}{
		{name: "empty doc", in: doc("", 0, 0), want: "---\n"},
		{name: "after text", in: doc("para", 4, 4), want: "para\n\n---\n"},
		{name: "after newline", in: doc("para\n", 5, 5), want: "para\n\n---\n"},
		{name: "after blank line", in: doc("para\n\n", 6, 6), want: "para\n\n---\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(tt.in, HR)
			if err != nil {
				t.Fatalf("Apply() error = %v", err)
			}
			if got.Text != tt.want {
				t.Fatalf("Apply() = %q, want %q", got.Text, tt.want)
			}
		})
	}
}

func TestUnknownCommand(t *testing.T) {
	if _, err := Apply(doc("x", 0, 0), Command("strike")); !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("expected ErrUnknownCommand, got %v", err)
	}
}

func TestPositionOffset(t *testing.T) {
	text := "ab\ncde\n\nf"
	tests := []struct {
		offset   int
		row, col int
	}{
		{0, 0, 0},
		{2, 0, 2},
		{3, 1, 0},
		{6, 1, 3},
		{7, 2, 0},
		{8, 3, 0},
		{9, 3, 1},
	}
	for _, tt := range tests {
		row, col := Position(text, tt.offset)
		if row != tt.row || col != tt.col {
			t.Fatalf("Position(%d) = (%d,%d), want (%d,%d)", tt.offset, row, col, tt.row, tt.col)
		}
		if got := Offset(text, tt.row, tt.col); got != tt.offset {
			t.Fatalf("Offset(%d,%d) = %d, want %d", tt.row, tt.col, got, tt.offset)
		}
	}
	if got := Offset(text, 1, 99); got != 6 {
		t.Fatalf("Offset clamps column, got %d", got)
	}
	if got := Offset(text, 99, 0); got != len([]rune(text)) {
		t.Fatalf("Offset clamps row, got %d", got)
	}
}
