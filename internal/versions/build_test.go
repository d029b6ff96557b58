package versions

import (
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildInfo(t *testing.T) {
	t.Parallel()

	vcs := []debug.BuildSetting{
		{Key: "vcs.revision", Value: "0123456789abcdef"},
		{Key: "vcs.time", Value: "2026-10-01T12:00:00Z"},
	}

	tests := []struct {
		name        string
		version     string
		commit      string
		date        string
		settings    []debug.BuildSetting
		wantVersion string
		wantCommit  string
		wantDate    string
	}{
		{
			name:        "release build",
			version:     "v1.2.0",
			commit:      "abc123",
			date:        "2026-09-30",
			settings:    vcs,
			wantVersion: "v1.2.0",
			wantCommit:  "abc123",
			wantDate:    "2026-09-30",
		},
		{
			name:        "dev build with vcs settings",
			version:     "dev",
			commit:      unknown,
			date:        unknown,
			settings:    vcs,
			wantVersion: "dev-01234567",
			wantCommit:  "0123456789abcdef",
			wantDate:    "2026-10-01T12:00:00Z",
		},
		{
			name:        "dev build without vcs settings",
			version:     "dev",
			commit:      unknown,
			date:        unknown,
			wantVersion: "dev",
			wantCommit:  unknown,
			wantDate:    unknown,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			info := buildInfo(tt.version, tt.commit, tt.date, tt.settings)
			assert.Equal(t, tt.wantVersion, info.Version)
			assert.Equal(t, tt.wantCommit, info.Commit)
			assert.Equal(t, tt.wantDate, info.BuildDate)
			assert.Equal(t, runtime.Version(), info.GoVersion)
			assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
		})
	}
}
