package updates

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const outdatedJSON = `{
  "installed": [
    {
      "name": "drupal/core",
      "version": "10.3.2",
      "latest": "10.3.6",
      "latest-status": "semver-safe-update",
      "description": "Drupal is an open source content management platform."
    },
    {
      "name": "symfony/yaml",
      "version": "v6.4.0",
      "latest": "v6.4.0",
      "latest-status": "up-to-date"
    },
    {
      "version": "1.0.0",
      "latest": "2.0.0"
    }
  ]
}`

func TestParseOutdated(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		data      string
		wantNames []string
		wantErr   bool
	}{
		{
			name:      "installed envelope",
			data:      outdatedJSON,
			wantNames: []string{"drupal/core", "symfony/yaml", ""},
		},
		{
			name:      "bare array",
			data:      `[{"name":"drupal/core"},{"name":"drupal/token"}]`,
			wantNames: []string{"drupal/core", "drupal/token"},
		},
		{
			name:      "null name",
			data:      `[{"name":null,"version":"1.0.0"}]`,
			wantNames: []string{""},
		},
		{
			name:      "empty input",
			data:      "  \n",
			wantNames: []string{},
		},
		{
			name:      "envelope without installed",
			data:      `{}`,
			wantNames: []string{},
		},
		{
			name:    "invalid json",
			data:    `{"installed": [`,
			wantErr: true,
		},
		{
			name:    "name is not a string",
			data:    `[{"name": 42}]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			list, err := ParseOutdated([]byte(tt.data))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			names := make([]string, 0, len(list))
			for _, u := range list {
				names = append(names, u.GetName())
			}
			assert.Equal(t, tt.wantNames, names)
		})
	}
}

func TestParseOutdatedFields(t *testing.T) {
	t.Parallel()

	list, err := ParseOutdated([]byte(outdatedJSON))
	require.NoError(t, err)
	require.Len(t, list, 3)

	core := list[0]
	assert.Equal(t, "drupal/core", core.Name)
	assert.Equal(t, "10.3.2", core.Version)
	assert.Equal(t, "10.3.6", core.Latest)
	assert.Equal(t, "semver-safe-update", core.LatestStatus)
	assert.Equal(t, "Drupal is an open source content management platform.", core.Description)
	assert.Empty(t, core.Homepage)
}

func TestUpdateKeepsOriginalRecord(t *testing.T) {
	t.Parallel()

	const record = `{"name": "drupal/core", "direct-dependency": true, "abandoned": false,` +
		` "source": "https://github.com/drupal/core", "warning": "pinned", "latest": "10.3.6"}`

	list, err := ParseOutdated([]byte("[" + record + "]"))
	require.NoError(t, err)
	require.Len(t, list, 1)

	assert.Equal(t, record, string(list[0].Raw()))

	encoded, err := json.Marshal(list[0])
	require.NoError(t, err)
	assert.JSONEq(t, record, string(encoded))

	t.Run("updates built in code encode their known fields", func(t *testing.T) {
		t.Parallel()

		u := Update{Name: "drupal/token", Latest: "1.15.0"}
		assert.Nil(t, u.Raw())

		encoded, err := json.Marshal(u)
		require.NoError(t, err)
		assert.JSONEq(t, `{"name": "drupal/token", "latest": "1.15.0"}`, string(encoded))
	})
}

func TestUpdateIsOutdated(t *testing.T) {
	t.Parallel()

	assert.True(t, Update{Version: "10.3.2", Latest: "10.3.6"}.IsOutdated())
	assert.False(t, Update{Version: "v6.4.0", Latest: "v6.4.0"}.IsOutdated())
	assert.False(t, Update{Version: "dev-main", Latest: "1.0.0"}.IsOutdated())
}

func TestOnlyOutdated(t *testing.T) {
	t.Parallel()

	list, err := ParseOutdated([]byte(outdatedJSON))
	require.NoError(t, err)

	outdated := OnlyOutdated(list)
	require.Len(t, outdated, 2)
	assert.Equal(t, "drupal/core", outdated[0].Name)
	assert.Equal(t, "", outdated[1].Name)

	assert.NotNil(t, OnlyOutdated(nil))
}
