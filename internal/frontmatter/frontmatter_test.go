package frontmatter

import (
	"errors"
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		wantHeader string
		wantBody   string
		wantErr    bool
	}{
		{
			name:       "header and body",
			content:    "---\nname: reviewer\n---\nBe thorough.\n",
			wantHeader: "name: reviewer",
			wantBody:   "Be thorough.",
		},
		{
			name:       "no body",
			content:    "---\nname: reviewer\n---\n",
			wantHeader: "name: reviewer",
			wantBody:   "",
		},
		{
			name:       "closing delimiter at EOF without newline",
			content:    "---\nname: reviewer\n---",
			wantHeader: "name: reviewer",
			wantBody:   "",
		},
		{
			name:       "crlf line endings",
			content:    "---\r\nname: reviewer\r\n---\r\nBody\r\n",
			wantHeader: "name: reviewer",
			wantBody:   "Body",
		},
		{
			name:       "body containing dashes",
			content:    "---\nname: x\n---\nfirst\n----\nlast\n",
			wantHeader: "name: x",
			wantBody:   "first\n----\nlast",
		},
		{
			name:    "no opening delimiter",
			content: "name: reviewer\n",
			wantErr: true,
		},
		{
			name:    "unterminated header",
			content: "---\nname: reviewer\n",
			wantErr: true,
		},
		{
			name:    "empty content",
			content: "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header, body, err := Split(tt.content)
			if tt.wantErr {
				if !errors.Is(err, ErrNoFrontmatter) {
					t.Fatalf("Split() err = %v, want ErrNoFrontmatter", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Split() failed: %v", err)
			}
			if header != tt.wantHeader {
				t.Errorf("header = %q, want %q", header, tt.wantHeader)
			}
			if body != tt.wantBody {
				t.Errorf("body = %q, want %q", body, tt.wantBody)
			}
		})
	}
}

func TestJoinIsFixedPoint(t *testing.T) {
	out := Join("name: reviewer", "Be thorough.")
	want := "---\nname: reviewer\n---\nBe thorough.\n"
	if out != want {
		t.Fatalf("Join = %q, want %q", out, want)
	}

	// Splitting what Join produced and joining again must reproduce the
	// exact bytes, otherwise repeated syncs would churn files forever.
	header, body, err := Split(out)
	if err != nil {
		t.Fatalf("Split(Join) failed: %v", err)
	}
	if again := Join(header, body); again != out {
		t.Errorf("Join not a fixed point: %q vs %q", again, out)
	}
}

func TestJoinEmptyParts(t *testing.T) {
	if out := Join("", ""); out != "---\n---\n" {
		t.Errorf("Join empty = %q", out)
	}
	if out := Join("a: b\n", ""); out != "---\na: b\n---\n" {
		t.Errorf("Join trailing newline header = %q", out)
	}
}
