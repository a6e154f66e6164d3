package summary

import (
	"strings"
	"testing"
)

func TestRecentLine_StripsANSI(t *testing.T) {
	line := "\x1b[31m2025-01-01T00:00:00.000Z ERROR boom\x1b[0m"
	p := RecentLine(line, 80, RecentOptions{StripANSI: true})
	if strings.Contains(p.Text, "\x1b[") {
		t.Fatalf("Text = %q, want no escape sequences", p.Text)
	}
	if p.Badge != "ERROR" || p.Style != StyleError {
		t.Fatalf("badge = %q/%v, want ERROR/%v", p.Badge, p.Style, StyleError)
	}
	if p.Text != "ERROR boom" {
		t.Fatalf("Text = %q, want %q", p.Text, "ERROR boom")
	}
}

func TestRecentLine_PlainModeKeepsStructuredLinesRaw(t *testing.T) {
	line := `SSE event: {"type":"response.created"}`
	p := RecentLine(line, 80, RecentOptions{})
	if p.Badge != "INFO" || p.Text != line {
		t.Fatalf("RecentLine = %+v, want INFO badge with raw line", p)
	}
}

func TestRecentLine_Pretty(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		want      string
		wantStyle Style
	}{
		{
			name:      "output delta",
			line:      `SSE event: {"type":"response.output_text.delta","item_id":"msg_1234567890abc","output_index":0,"delta":"hi"}`,
			want:      "msg_123456… #0: 💬 hi",
			wantStyle: StyleOutput,
		},
		{
			name:      "args delta",
			line:      `SSE event: {"type":"response.function_call_arguments.delta","item_id":"fc","delta":"{\"cmd\": \"make\""}`,
			want:      "fc: 🛠️ make",
			wantStyle: StyleArgs,
		},
		{
			name:      "error event",
			line:      `SSE event: {"type":"error","message":"rate limited"}`,
			want:      "❌ rate limited",
			wantStyle: StyleError,
		},
		{
			name:      "error object",
			line:      `SSE event: {"type":"error","error":{"code":429,"message":"slow down"}}`,
			want:      `❌ {"code":429,"message":"slow down"}`,
			wantStyle: StyleError,
		},
		{
			name:      "other event",
			line:      `SSE event: {"type":"response.created"}`,
			want:      "📡 response.created",
			wantStyle: StyleDefault,
		},
		{
			name:      "function call",
			line:      `FunctionCall: {"name":"shell","command":["git","status"]}`,
			want:      "🛠️ call: git status",
			wantStyle: StyleTool,
		},
		{
			name:      "warn text",
			line:      "2025-01-01T00:00:00.5Z WARN slow poll",
			want:      "WARN slow poll",
			wantStyle: StyleWarn,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := RecentLine(tt.line, 80, RecentOptions{Pretty: true})
			if p.Text != tt.want {
				t.Fatalf("Text = %q, want %q", p.Text, tt.want)
			}
			if p.Style != tt.wantStyle {
				t.Fatalf("Style = %v, want %v", p.Style, tt.wantStyle)
			}
		})
	}
}

func TestRecentLine_Width(t *testing.T) {
	line := `SSE event: {"type":"response.output_text.delta","item_id":"x","delta":"` + strings.Repeat("a", 200) + `"}`
	p := RecentLine(line, 30, RecentOptions{Pretty: true})
	if n := runeLen(p.Text); n > 30 {
		t.Fatalf("len(Text) = %d, want <= 30", n)
	}
}
