package command

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapdiff/snapdiff/internal/render"
)

func TestFetchBufferFlagContract(t *testing.T) {
	tests := []struct {
		name    string
		parent  string
		child   string
		file    string
		wantErr string
	}{
		{
			name:    "parent without child",
			parent:  "/snaps/a",
			wantErr: "--parent needs --child",
		},
		{
			name:    "nothing given",
			wantErr: "either --file or --parent and --child are required",
		},
		{
			name:    "missing file",
			file:    "/no/such/stream",
			wantErr: "read stream",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fetchBuffer(context.Background(), tt.parent, tt.child, tt.file, false)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestEmitDiffFormats(t *testing.T) {
	diffs := []render.PathDiff{
		{Path: "a", Actions: []string{"mkfile"}},
	}

	var text bytes.Buffer
	require.NoError(t, emitDiff(&text, diffs, "text", false))
	assert.Contains(t, text.String(), "\na\n\tmkfile\n")

	var csv bytes.Buffer
	require.NoError(t, emitDiff(&csv, diffs, "csv", false))
	assert.Equal(t, "a;mkfile\n", csv.String())

	var j bytes.Buffer
	require.NoError(t, emitDiff(&j, diffs, "json", false))
	assert.Contains(t, j.String(), `"path": "a"`)

	var y bytes.Buffer
	require.NoError(t, emitDiff(&y, diffs, "yaml", false))
	assert.Contains(t, y.String(), "path: a")

	assert.Error(t, emitDiff(&text, diffs, "xml", false))
}

func TestOutputValidator(t *testing.T) {
	for _, ok := range []string{"text", "csv", "json", "yaml"} {
		assert.NoError(t, OutputValidator(ok))
	}
	assert.Error(t, OutputValidator("raw"))
	assert.Error(t, OutputValidator(""))
}

func TestInitApp(t *testing.T) {
	app, err := InitApp(context.Background(), []string{"snapdiff", "diff"})
	require.NoError(t, err)
	require.NotNil(t, app)

	names := make([]string, 0, len(app.Commands))
	for _, c := range app.Commands {
		names = append(names, c.Name)
	}
	assert.Contains(t, names, "diff")
	assert.Contains(t, names, "ops")
}
