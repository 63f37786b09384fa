package gitlog

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pescuma/gitweb/lib/model"
)

const (
	idA = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	idB = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	idC = "cccccccccccccccccccccccccccccccccccccccc"
	idT = "1111111111111111111111111111111111111111"
)

func rawLog() string {
	return strings.Join([]string{
		"commit " + idC + " (HEAD -> refs/heads/main, refs/remotes/origin/main, tag: refs/tags/v1.0)",
		"tree " + idT,
		"parent " + idB,
		"parent " + idA,
		"author Jane Doe <jane@example.com> 1700000000 +0100",
		"committer John Roe <john@example.com> 1700000100 -0500",
		"",
		"    Merge branch 'feature'",
		"    ",
		"    Details here",
		"",
		"commit " + idB,
		"tree " + idT,
		"parent " + idA,
		"author Jane Doe <jane@example.com> 1600000000 +0000",
		"committer Jane Doe <jane@example.com> 1600000000 +0000",
		"",
		"    Second",
		"",
		"commit " + idA,
		"tree " + idT,
		"author Jane Doe <jane@example.com> 1500000000 +0000",
		"committer Jane Doe <jane@example.com> 1500000000 +0000",
		"",
		"    Initial",
		"",
	}, "\n")
}

func TestParseLog(t *testing.T) {
	t.Parallel()

	commits := Parse(rawLog())
	require.Len(t, commits, 3)

	c := commits[0]
	assert.Equal(t, idC, c.ID)
	assert.Equal(t, []string{idB, idA}, c.Parents)
	assert.Equal(t, idT, c.Tree)
	assert.Equal(t, "Jane Doe", c.Author.Name)
	assert.Equal(t, "jane@example.com", c.Author.Email)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), c.Author.Date)
	assert.Equal(t, "John Roe", c.Committer.Name)
	assert.Equal(t, "Merge branch 'feature'\n\nDetails here", c.Message)
	assert.Equal(t, "Merge branch 'feature'", c.Subject())
	assert.Equal(t, []model.Ref{
		{Name: "HEAD -> refs/heads/main", Category: model.RefOther},
		{Name: "origin/main", Category: model.RefRemote},
		{Name: "v1.0", Category: model.RefTag},
	}, c.Refs)

	assert.Equal(t, []string{idA}, commits[1].Parents)
	assert.Empty(t, commits[1].Refs)
	assert.True(t, commits[2].IsRoot())
	assert.Equal(t, "Initial", commits[2].Message)
}

func TestParseEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Parse(""))
}

func TestParseSkipsUnknownLines(t *testing.T) {
	t.Parallel()

	data := strings.Join([]string{
		"commit " + idA,
		"tree " + idT,
		"gpgsig -----BEGIN PGP SIGNATURE-----",
		" ",
		" abcdef",
		" -----END PGP SIGNATURE-----",
		"something unexpected",
		"    Signed",
	}, "\n")

	commits := Parse(data)
	require.Len(t, commits, 1)
	assert.Equal(t, "Signed", commits[0].Message)
}

func TestParseDropsRecordWithoutID(t *testing.T) {
	t.Parallel()

	data := "commit nothex\ntree " + idT + "\n    Broken\ncommit " + idA + "\n    Good\n"

	commits := Parse(data)
	require.Len(t, commits, 1)
	assert.Equal(t, idA, commits[0].ID)
}

func TestParsePerson(t *testing.T) {
	t.Parallel()

	p := ParsePerson("Some One <some@one.org> 86400 +0200")
	assert.Equal(t, "Some One", p.Name)
	assert.Equal(t, "some@one.org", p.Email)
	assert.Equal(t, time.Date(1970, 1, 2, 0, 0, 0, 0, time.UTC), p.Date)

	p = ParsePerson("no email")
	assert.Equal(t, "no email", p.Name)
	assert.True(t, p.Date.IsZero())
}

func TestIsValidID(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValidID(idA))
	assert.True(t, IsValidID(strings.Repeat("0", 64)))
	assert.False(t, IsValidID("abc"))
	assert.False(t, IsValidID(strings.Repeat("g", 40)))
}
