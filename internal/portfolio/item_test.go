package portfolio

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2024-03-05", "2024-03-05", true},
		{"2024/03/05", "2024-03-05", true},
		{"2024/3/5", "2024-03-05", true},
		{"2024-03", "2024-03-01", true},
		{"2024", "2024-01-01", true},
		{"2024-03-05T10:00:00", "2024-03-05", true},
		{"2024-03-05T10:00:00+09:00", "2024-03-05", true},
		{" 2024-03-05 ", "2024-03-05", true},
		{"", "", false},
		{"someday", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseDate(tt.in)
		if ok != tt.ok {
			t.Errorf("ParseDate(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && got.Format("2006-01-02") != tt.want {
			t.Errorf("ParseDate(%q) = %s, want %s", tt.in, got.Format("2006-01-02"), tt.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	if got := (Item{Date: "2024-03-05"}).FormatDate(""); got != "2024/3/5" {
		t.Errorf("FormatDate default = %q, want %q", got, "2024/3/5")
	}
	if got := (Item{Date: "2024-12-25"}).FormatDate("2006年1月2日"); got != "2024年12月25日" {
		t.Errorf("FormatDate custom = %q", got)
	}
	if got := (Item{Date: "bogus"}).FormatDate(""); got != "" {
		t.Errorf("FormatDate unparseable = %q, want empty", got)
	}
}

func TestSortByDateDesc(t *testing.T) {
	items := []Item{
		{Title: "old", Date: "2021-01-10"},
		{Title: "undated-a", Date: ""},
		{Title: "new", Date: "2024-06-01"},
		{Title: "mid", Date: "2023/02/01"},
		{Title: "undated-b", Date: "later"},
		{Title: "mid-twin", Date: "2023-02-01"},
	}
	SortByDateDesc(items)

	var got []string
	for _, it := range items {
		got = append(got, it.Title)
	}
	want := []string{"new", "mid", "mid-twin", "old", "undated-a", "undated-b"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sort order mismatch (-want +got):\n%s", diff)
	}
}
