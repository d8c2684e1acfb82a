package installer

import "testing"

func TestReleaseURLs(t *testing.T) {
	cases := []struct {
		desc    string
		rel     Release
		wantURL string
		wantBin string
	}{
		{
			desc:    "linux x86_64",
			rel:     Release{Version: "v0.10.0", Arch: "x86_64", Triple: "unknown-linux-musl"},
			wantURL: "https://github.com/mozilla/sccache/releases/download/v0.10.0/sccache-v0.10.0-x86_64-unknown-linux-musl.tar.gz",
			wantBin: "sccache",
		},
		{
			desc:    "linux i686",
			rel:     Release{Version: "v0.10.0", Arch: "i686", Triple: "unknown-linux-musl"},
			wantURL: "https://github.com/mozilla/sccache/releases/download/v0.10.0/sccache-v0.10.0-i686-unknown-linux-musl.tar.gz",
			wantBin: "sccache",
		},
		{
			desc:    "macOS arm64",
			rel:     Release{Version: "v0.10.0", Arch: "aarch64", Triple: "apple-darwin"},
			wantURL: "https://github.com/mozilla/sccache/releases/download/v0.10.0/sccache-v0.10.0-aarch64-apple-darwin.tar.gz",
			wantBin: "sccache",
		},
		{
			desc:    "windows x86_64",
			rel:     Release{Version: "v0.10.0", Arch: "x86_64", Triple: "pc-windows-msvc"},
			wantURL: "https://github.com/mozilla/sccache/releases/download/v0.10.0/sccache-v0.10.0-x86_64-pc-windows-msvc.tar.gz",
			wantBin: "sccache.exe",
		},
	}

	for _, c := range cases {
		t.Run(c.desc, func(t *testing.T) {
			if got := c.rel.ArchiveURL(); got != c.wantURL {
				t.Errorf("ArchiveURL() = %q, want %q", got, c.wantURL)
			}
			if got := c.rel.BinaryName(); got != c.wantBin {
				t.Errorf("BinaryName() = %q, want %q", got, c.wantBin)
			}
		})
	}
}

func TestHostRelease(t *testing.T) {
	rel, err := HostRelease()
	if err != nil {
		t.Skipf("host platform unsupported: %v", err)
	}
	if rel.Version != Version {
		t.Errorf("Version = %q, want %q", rel.Version, Version)
	}
	if rel.Arch == "" || rel.Triple == "" {
		t.Errorf("incomplete release: %+v", rel)
	}
}
