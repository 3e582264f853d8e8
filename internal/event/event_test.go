package event

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePayload = `{
	"pull_request": {
		"number": 42,
		"title": "Fix critical bug in login",
		"base": {"ref": "main"},
		"head": {"ref": "feature/fix-login"}
	}
}`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "event.json")
	require.NoError(t, os.WriteFile(path, []byte(samplePayload), 0644))

	ev, err := Load(path)
	require.NoError(t, err)

	number, err := ev.PRNumber()
	require.NoError(t, err)
	assert.Equal(t, 42, number)

	title, err := ev.PRTitle()
	require.NoError(t, err)
	assert.Equal(t, "Fix critical bug in login", title)

	base, err := ev.BaseBranch()
	require.NoError(t, err)
	assert.Equal(t, "main", base)

	head, err := ev.HeadBranch()
	require.NoError(t, err)
	assert.Equal(t, "feature/fix-login", head)
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read event file")
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "event.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse event file")
}

func TestMissingFields(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		get     func(*Event) error
		path    string
	}{
		{
			name:    "number missing",
			payload: `{"pull_request": {"title": "t"}}`,
			get:     func(e *Event) error { _, err := e.PRNumber(); return err },
			path:    "pull_request.number",
		},
		{
			name:    "title missing",
			payload: `{"pull_request": {"number": 1}}`,
			get:     func(e *Event) error { _, err := e.PRTitle(); return err },
			path:    "pull_request.title",
		},
		{
			name:    "base ref missing",
			payload: `{"pull_request": {"number": 1, "base": {}}}`,
			get:     func(e *Event) error { _, err := e.BaseBranch(); return err },
			path:    "pull_request.base.ref",
		},
		{
			name:    "base object missing",
			payload: `{"pull_request": {"number": 1}}`,
			get:     func(e *Event) error { _, err := e.BaseBranch(); return err },
			path:    "pull_request.base.ref",
		},
		{
			name:    "head ref missing",
			payload: `{"pull_request": {"number": 1, "head": {}}}`,
			get:     func(e *Event) error { _, err := e.HeadBranch(); return err },
			path:    "pull_request.head.ref",
		},
		{
			name:    "pull_request missing entirely",
			payload: `{}`,
			get:     func(e *Event) error { _, err := e.PRTitle(); return err },
			path:    "pull_request.title",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ev Event
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &ev))

			err := tt.get(&ev)
			require.Error(t, err)

			var missing *MissingFieldError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, tt.path, missing.Path)
			assert.Contains(t, err.Error(), tt.path)
		})
	}
}

func TestZeroValuesAreNotMissing(t *testing.T) {
	// A present field with a zero value must not be reported as missing.
	var ev Event
	require.NoError(t, json.Unmarshal([]byte(`{"pull_request": {"number": 0, "title": ""}}`), &ev))

	number, err := ev.PRNumber()
	require.NoError(t, err)
	assert.Equal(t, 0, number)

	title, err := ev.PRTitle()
	require.NoError(t, err)
	assert.Equal(t, "", title)
}
