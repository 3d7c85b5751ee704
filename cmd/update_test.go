package cmd

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestExpectedArchiveName(t *testing.T) {
	tests := []struct {
		tag    string
		goos   string
		goarch string
		want   string
	}{
		{"v1.2.3", "linux", "amd64", "steamadd_1.2.3_linux_amd64.tar.gz"},
		{"1.2.3", "darwin", "arm64", "steamadd_1.2.3_darwin_arm64.tar.gz"},
		{"v1.2.3", "windows", "amd64", "steamadd_1.2.3_windows_amd64.zip"},
	}
	for _, tt := range tests {
		got := expectedArchiveName(tt.tag, tt.goos, tt.goarch)
		if got != tt.want {
			t.Errorf("expectedArchiveName(%q, %q, %q) = %q, want %q", tt.tag, tt.goos, tt.goarch, got, tt.want)
		}
	}
}

func TestParseVersionTriple(t *testing.T) {
	v, err := parseVersionTriple("1.2.3")
	if err != nil {
		t.Fatalf("parseVersionTriple: %v", err)
	}
	if v != [3]int{1, 2, 3} {
		t.Errorf("got %v, want [1 2 3]", v)
	}

	for _, bad := range []string{"dev", "1.2", "1.2.3.4", "1.x.3", "", "-1.0.0"} {
		if _, err := parseVersionTriple(bad); err == nil {
			t.Errorf("parseVersionTriple(%q): expected error", bad)
		}
	}
}

func TestVersionLess(t *testing.T) {
	tests := []struct {
		a, b [3]int
		want bool
	}{
		{[3]int{1, 1, 2}, [3]int{1, 2, 0}, true},
		{[3]int{1, 2, 0}, [3]int{1, 2, 0}, false},
		{[3]int{1, 2, 1}, [3]int{1, 2, 0}, false},
		{[3]int{0, 9, 9}, [3]int{1, 0, 0}, true},
		{[3]int{2, 0, 0}, [3]int{1, 9, 9}, false},
	}
	for _, tt := range tests {
		if got := versionLess(tt.a, tt.b); got != tt.want {
			t.Errorf("versionLess(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestNormalizeReleaseVersion(t *testing.T) {
	if got := normalizeReleaseVersion("v0.1.9"); got != "0.1.9" {
		t.Errorf("got %q", got)
	}
	if got := normalizeReleaseVersion("0.1.9"); got != "0.1.9" {
		t.Errorf("got %q", got)
	}
	if got := normalizeReleaseVersion("v"); got != "v" {
		t.Errorf("got %q", got)
	}
}

func TestSanitizeArchivePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"steamadd", "steamadd"},
		{"./steamadd", "steamadd"},
		{"dist/steamadd.exe", "dist/steamadd.exe"},
		{"../evil", ""},
		{"a/../../evil", ""},
		{"/abs/path", ""},
		{"", ""},
	}
	for _, tt := range tests {
		got := sanitizeArchivePath(tt.in)
		want := filepath.FromSlash(tt.want)
		if tt.want == "" {
			want = ""
		}
		if got != want {
			t.Errorf("sanitizeArchivePath(%q) = %q, want %q", tt.in, got, want)
		}
	}
}

func TestParseExpectedSHA256(t *testing.T) {
	manifest := strings.NewReader(strings.Join([]string{
		"0011223344556677889900112233445566778899001122334455667788990011  steamadd_1.0.0_linux_amd64.tar.gz",
		"aabbccddeeff00112233445566778899aabbccddeeff00112233445566778899  steamadd_1.0.0_windows_amd64.zip",
		"",
	}, "\n"))
	got, err := parseExpectedSHA256(manifest, "steamadd_1.0.0_windows_amd64.zip")
	if err != nil {
		t.Fatalf("parseExpectedSHA256: %v", err)
	}
	if got != "aabbccddeeff00112233445566778899aabbccddeeff00112233445566778899" {
		t.Errorf("got %q", got)
	}

	if _, err := parseExpectedSHA256(strings.NewReader("deadbeef other.tar.gz\n"), "missing.zip"); err == nil {
		t.Error("expected error for missing filename")
	}

	if _, err := parseExpectedSHA256(strings.NewReader("nothex steamadd.zip\n"), "steamadd.zip"); err == nil {
		t.Error("expected error for invalid hex")
	}
}

func TestParseExpectedSHA256StarPrefix(t *testing.T) {
	manifest := strings.NewReader("0011223344556677889900112233445566778899001122334455667788990011 *steamadd_1.0.0_linux_amd64.tar.gz\n")
	got, err := parseExpectedSHA256(manifest, "steamadd_1.0.0_linux_amd64.tar.gz")
	if err != nil {
		t.Fatalf("parseExpectedSHA256: %v", err)
	}
	if got != "0011223344556677889900112233445566778899001122334455667788990011" {
		t.Errorf("got %q", got)
	}
}

func TestSplitRepo(t *testing.T) {
	owner, repo, err := splitRepo("remixware/steamadd")
	if err != nil {
		t.Fatalf("splitRepo: %v", err)
	}
	if owner != "remixware" || repo != "steamadd" {
		t.Errorf("got %q/%q", owner, repo)
	}
	for _, bad := range []string{"", "noslash", "a/b/c", "/b", "a/"} {
		if _, _, err := splitRepo(bad); err == nil {
			t.Errorf("splitRepo(%q): expected error", bad)
		}
	}
}

func TestSelectReleaseAsset(t *testing.T) {
	rel := &githubRelease{
		TagName: "v1.0.0",
		Assets: []githubAsset{
			{Name: "steamadd_1.0.0_linux_amd64.tar.gz", BrowserDownloadURL: "https://example.test/linux"},
			{Name: "steamadd_1.0.0_windows_amd64.zip", BrowserDownloadURL: "https://example.test/win"},
			{Name: "checksums.txt", BrowserDownloadURL: "https://example.test/sums"},
		},
	}

	a, err := selectReleaseAsset(rel, "v1.0.0", "windows", "amd64")
	if err != nil {
		t.Fatalf("selectReleaseAsset: %v", err)
	}
	if a.Name != "steamadd_1.0.0_windows_amd64.zip" {
		t.Errorf("got %q", a.Name)
	}

	if _, err := selectReleaseAsset(rel, "v1.0.0", "plan9", "386"); err == nil {
		t.Error("expected error for unavailable platform")
	}
}

func TestFindChecksumAsset(t *testing.T) {
	rel := &githubRelease{Assets: []githubAsset{
		{Name: "steamadd_1.0.0_linux_amd64.tar.gz"},
		{Name: "checksums.txt"},
	}}
	a, ok := findChecksumAsset(rel)
	if !ok || a.Name != "checksums.txt" {
		t.Errorf("got %v ok=%v", a, ok)
	}

	rel = &githubRelease{Assets: []githubAsset{{Name: "steamadd.tar.gz"}}}
	if _, ok := findChecksumAsset(rel); ok {
		t.Error("expected no checksum asset")
	}
}

func TestHumanBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
	}
	for _, tt := range tests {
		if got := humanBytes(tt.n); got != tt.want {
			t.Errorf("humanBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
