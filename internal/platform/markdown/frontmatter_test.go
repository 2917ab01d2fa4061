package markdown

import (
	"strings"
	"testing"
)

func TestComposeKeepsFieldOrderAndDropsEmptyStrings(t *testing.T) {
	t.Parallel()

	out, err := Compose(Header{
		{Key: "name", Value: "Ana Souza"},
		{Key: "email", Value: ""},
		{Key: "sections", Value: map[string]int{"skill": 2}},
	}, "# Ana Souza\n")
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if !strings.HasPrefix(out, "---\nname: Ana Souza\nsections:\n") {
		t.Fatalf("unexpected header %q", out)
	}
	if strings.Contains(out, "email") {
		t.Fatalf("empty field should be skipped: %q", out)
	}
	if !strings.HasSuffix(out, "---\n\n# Ana Souza\n") {
		t.Fatalf("unexpected body placement %q", out)
	}
}

func TestSplitFrontmatterRoundTrip(t *testing.T) {
	t.Parallel()

	out, err := Compose(Header{{Key: "name", Value: "Ana"}, {Key: "updated_at", Value: "2026-01-15T09:00:00Z"}}, "body\n")
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	meta, body, err := SplitFrontmatter(out)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if meta["name"] != "Ana" || meta["updated_at"] != "2026-01-15T09:00:00Z" {
		t.Fatalf("unexpected meta %v", meta)
	}
	if body != "body\n" {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestSplitFrontmatterEdgeCases(t *testing.T) {
	t.Parallel()

	meta, body, err := SplitFrontmatter("# plain\n")
	if err != nil || len(meta) != 0 || body != "# plain\n" {
		t.Fatalf("plain content: meta=%v body=%q err=%v", meta, body, err)
	}

	meta, body, err = SplitFrontmatter("---\r\ntitle: x\r\n---\r\ntext")
	if err != nil || meta["title"] != "x" || body != "text" {
		t.Fatalf("crlf content: meta=%v body=%q err=%v", meta, body, err)
	}

	meta, _, err = SplitFrontmatter("---\n---\nrest")
	if err != nil || len(meta) != 0 {
		t.Fatalf("empty block: meta=%v err=%v", meta, err)
	}

	if _, _, err := SplitFrontmatter("---\ntitle: x\n"); err == nil {
		t.Fatal("expected error for unterminated block")
	}
}
