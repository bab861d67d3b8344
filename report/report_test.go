package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

// columnStarts returns the offset each cell starts at, given the widths.
func columnStarts(widths []int) []int {
	starts := make([]int, len(widths))
	for i := 1; i < len(widths); i++ {
		starts[i] = starts[i-1] + widths[i-1] + len(Gap)
	}
	return starts
}

func TestRenderBFD(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, Table{
		Title:  "BFD Session Status",
		Header: []string{"STATE", "COLOR", "UPTIME"},
		Rows:   [][]string{{"up", "biz-internet", "0:10:00"}},
	})
	require.NoError(t, err)

	out := lines(buf.String())
	require.Len(t, out, 3)
	assert.Equal(t, "BFD Session Status:", out[0])
	assert.Equal(t, "STATE  COLOR         UPTIME", out[1])
	assert.Equal(t, "up     biz-internet  0:10:00", out[2])
	assert.Equal(t, []string{"STATE", "COLOR", "UPTIME"}, strings.Fields(out[1]))
	assert.Equal(t, []string{"up", "biz-internet", "0:10:00"}, strings.Fields(out[2]))
}

func TestRenderAlignment(t *testing.T) {
	table := Table{
		Header: []string{"TLOC COLOR", "LOSS", "LATENCY", "JITTER"},
		Rows: [][]string{
			{"mpls", "0", "12", "1"},
			{"biz-internet", "10", "143", "27"},
			{"public-internet", "100", "1", "0"},
		},
	}
	widths, err := table.Widths()
	require.NoError(t, err)
	assert.Equal(t, []int{15, 4, 7, 6}, widths)
	starts := columnStarts(widths)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, table))

	out := lines(buf.String())
	require.Len(t, out, 4)
	cells := append([][]string{table.Header}, table.Rows...)
	for r, line := range out {
		for c, start := range starts {
			assert.True(t, strings.HasPrefix(line[start:], cells[r][c]), "row %d column %d in %q", r, c, line)
			if start > 0 {
				assert.Equal(t, byte(' '), line[start-1], "row %d column %d in %q", r, c, line)
			}
		}
	}
}

func TestRenderEmptyRows(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, Table{
		Title:  "Hardware Status",
		Header: []string{"HARDWARE", "NUMBER", "STATUS"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Hardware Status:\nHARDWARE  NUMBER  STATUS\n", buf.String())
}

func TestRenderRagged(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, Table{
		Header: []string{"INTERFACE", "STATUS"},
		Rows: [][]string{
			{"ge0/0", "Up"},
			{"ge0/1", "Down", "uplink"},
		},
	})
	require.Error(t, err)
	serr, ok := err.(*ShapeError)
	require.True(t, ok)
	assert.Equal(t, 1, serr.Row)
	assert.Equal(t, 3, serr.Columns)
	assert.Equal(t, 2, serr.Want)
	assert.Empty(t, buf.String())
}

func TestRenderIdempotent(t *testing.T) {
	table := Table{
		Title:  "System Status",
		Header: []string{"CLOCK", "UPTIME"},
		Rows:   [][]string{{"Fri Jul 26 10:01:02 UTC 2019", "12 days 01 hrs 10 min 03 sec"}},
	}

	var first, second bytes.Buffer
	require.NoError(t, Render(&first, table))
	require.NoError(t, Render(&second, table))
	assert.Equal(t, first.Bytes(), second.Bytes())
}
