package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

func TestRunJSONFiltersByStatus(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"--status", "Rejected", "--json"}, &out, &errOut, testNow)
	require.Equal(t, 0, code, errOut.String())

	var page pageOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &page))
	assert.Equal(t, 4, page.TotalCount)
	assert.Equal(t, 1, page.TotalPages)
	assert.Len(t, page.Items, 4)
	for _, item := range page.Items {
		assert.Equal(t, "Rejected", item.Status.Label)
	}
}

func TestRunTablePrintsRange(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"--page", "3"}, &out, &errOut, testNow)
	require.Equal(t, 0, code, errOut.String())

	text := out.String()
	assert.True(t, strings.HasPrefix(text, "ORDER ID"))
	assert.Contains(t, text, "21-23 of 23 (page 3 of 3)")
}

func TestRunEmptyPage(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"--status", "Rejected", "--page", "2"}, &out, &errOut, testNow)
	require.Equal(t, 0, code)
	assert.Equal(t, "no orders (page 2 of 1, 4 matching)\n", out.String())
}

func TestRunHugePage(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"--page", "922337203685477582"}, &out, &errOut, testNow)
	require.Equal(t, 0, code, errOut.String())
	assert.Equal(t, "no orders (page 922337203685477582 of 3, 23 matching)\n", out.String())

	out.Reset()
	code = run([]string{"--page", "922337203685477582", "--json"}, &out, &errOut, testNow)
	require.Equal(t, 0, code, errOut.String())
	var page pageOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &page))
	assert.Empty(t, page.Items)
	assert.Equal(t, 23, page.StartIndex)
}

func TestRunRejectsUnknownValues(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "status", args: []string{"--status", "Lost"}},
		{name: "project", args: []string{"--project", "Nope"}},
		{name: "sort", args: []string{"--sort", "price"}},
		{name: "direction", args: []string{"--sort", "id", "--dir", "sideways"}},
		{name: "page", args: []string{"--page", "0"}},
		{name: "unknown flag", args: []string{"--bogus"}},
		{name: "positional", args: []string{"extra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			code := run(tt.args, &out, &errOut, testNow)
			assert.Equal(t, 2, code)
			assert.Contains(t, errOut.String(), "error:")
		})
	}
}

func TestRunHelp(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"--help"}, &out, &errOut, testNow)
	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "Usage: orderquery")
}
