package tree

import (
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gertd/go-pluralize"
	"github.com/go-enry/go-enry/v2"
	"github.com/pkg/errors"
)

const (
	TypeTree = "tree"
	TypeBlob = "blob"

	modeSymlink = 0o120000
	modeMask    = 0o170000

	mtimeLayout = "2006-01-02T15:04"
)

var plurals = pluralize.NewClient()

type Entry struct {
	Mode   uint32 `json:"mode"`
	Type   string `json:"type"`
	Object string `json:"object"`
	// Size is -1 when unknown. For local folders it is the number of items inside.
	Size  int64      `json:"size"`
	Name  string     `json:"name"`
	MTime *time.Time `json:"mtime,omitempty"`
}

func (e *Entry) IsTree() bool {
	return e.Type == TypeTree
}

func (e *Entry) IsSymlink() bool {
	return e.Mode&modeMask == modeSymlink
}

func (e *Entry) FormattedSize() string {
	switch {
	case e.Size < 0:
		return ""
	case e.IsTree():
		return plurals.Pluralize("item", int(e.Size), true)
	default:
		return humanize.Bytes(uint64(e.Size))
	}
}

// Language guesses the language of a blob from its name.
func (e *Entry) Language() string {
	if e.IsTree() {
		return ""
	}

	lang, _ := enry.GetLanguageByExtension(e.Name)
	if lang == "" {
		lang, _ = enry.GetLanguageByFilename(e.Name)
	}
	return lang
}

// ParseLsTree parses the output of ls-tree, with or without -l. Local listings
// add the modification time to the object as <path>#<time>.
func ParseLsTree(output string) ([]*Entry, error) {
	var result []*Entry

	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		entry, err := parseLine(line)
		if err != nil {
			return nil, err
		}

		result = append(result, entry)
	}

	return result, nil
}

func parseLine(line string) (*Entry, error) {
	tab := strings.IndexByte(line, '\t')
	if tab < 0 {
		return nil, errors.Errorf("invalid ls-tree line: %v", line)
	}

	fields := strings.Fields(line[:tab])
	if len(fields) != 3 && len(fields) != 4 {
		return nil, errors.Errorf("invalid ls-tree line: %v", line)
	}

	mode, err := strconv.ParseUint(fields[0], 8, 32)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid mode in ls-tree line: %v", line)
	}

	result := &Entry{
		Mode:   uint32(mode),
		Type:   fields[1],
		Object: fields[2],
		Size:   -1,
		Name:   line[tab+1:],
	}

	if i := strings.LastIndexByte(result.Object, '#'); i >= 0 {
		t, err := time.Parse(mtimeLayout, result.Object[i+1:])
		if err == nil {
			result.Object = result.Object[:i]
			result.MTime = &t
		}
	}

	if len(fields) == 4 && fields[3] != "-" {
		result.Size, err = strconv.ParseInt(fields[3], 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid size in ls-tree line: %v", line)
		}
	}

	return result, nil
}
