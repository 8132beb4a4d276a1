package cardvault

import "testing"

func TestNextID(t *testing.T) {
	tests := []struct {
		name   string
		ids    []string
		prefix string
		want   string
	}{
		{"empty", nil, "p", "p00001"},
		{"sequence", []string{"p00001", "p00002", "p00003"}, "p", "p00004"},
		{"gap keeps max", []string{"p00001", "p00040"}, "p", "p00041"},
		{"unordered", []string{"p00007", "p00002"}, "p", "p00008"},
		{"other prefix ignored", []string{"e00009", "p00002"}, "p", "p00003"},
		{"event prefix isolated", []string{"p00009"}, "e", "e00001"},
		{"malformed suffix skipped", []string{"pabc", "p00004"}, "p", "p00005"},
		{"wide number not truncated", []string{"p123456"}, "p", "p123457"},
		{"unpadded legacy id", []string{"p7"}, "p", "p00008"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextID(tt.ids, tt.prefix); got != tt.want {
				t.Errorf("NextID(%v, %q) = %q, want %q", tt.ids, tt.prefix, got, tt.want)
			}
		})
	}
}
