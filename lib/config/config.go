package config

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/pescuma/gitweb/lib/diffview"
	"github.com/pescuma/gitweb/lib/gitlog"
	"github.com/pescuma/gitweb/lib/graph"
	"github.com/pescuma/gitweb/lib/repo"
	"github.com/pescuma/gitweb/lib/storages"
)

const (
	KeyGitCmd         = "git.cmd"
	KeyGitDefaultArgs = "git.default-args"
	KeyAuthorName     = "git.author-name"
	KeyAuthorEmail    = "git.author-email"
	KeyRowHeight      = "graph.row-height"
	KeyLaneWidth      = "graph.lane-width"
	KeyPageSize       = "history.page-size"
	KeyDiffContext    = "diff.context"
)

type Config struct {
	Git         string
	DefaultArgs []string
	AuthorName  string
	AuthorEmail string

	RowHeight float64
	LaneWidth float64

	PageSize    int
	DiffContext int
}

func New() *Config {
	git := repo.NewOptions()

	return &Config{
		Git:         git.Git,
		DefaultArgs: git.DefaultArgs,
		RowHeight:   graph.DefaultRowHeight,
		LaneWidth:   graph.DefaultLaneWidth,
		PageSize:    gitlog.DefaultPageSize,
		DiffContext: diffview.DefaultContext,
	}
}

func Keys() []string {
	return []string{
		KeyGitCmd, KeyGitDefaultArgs, KeyAuthorName, KeyAuthorEmail,
		KeyRowHeight, KeyLaneWidth,
		KeyPageSize, KeyDiffContext,
	}
}

// Load reads the defaults overridden by the values stored in the workspace.
func Load(storage storages.Storage) (*Config, error) {
	values, err := storage.LoadConfig()
	if err != nil {
		return nil, err
	}

	result := New()

	keys := lo.Keys(*values)
	sort.Strings(keys)

	for _, k := range keys {
		err = result.Set(k, (*values)[k])
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

// Store validates and saves a value in the workspace.
func Store(storage storages.Storage, key string, value string) error {
	err := New().Set(key, value)
	if err != nil {
		return err
	}

	values, err := storage.LoadConfig()
	if err != nil {
		return err
	}

	(*values)[key] = value

	return storage.WriteConfig()
}

// Unset removes a stored value, going back to the default.
func Unset(storage storages.Storage, key string) error {
	if !lo.Contains(Keys(), key) {
		return errors.Errorf("unknown config: %v", key)
	}

	values, err := storage.LoadConfig()
	if err != nil {
		return err
	}

	delete(*values, key)

	return storage.WriteConfig()
}

func (c *Config) Set(key string, value string) error {
	var err error

	switch key {
	case KeyGitCmd:
		if value == "" {
			return errors.Errorf("%v can not be empty", key)
		}
		c.Git = value

	case KeyGitDefaultArgs:
		c.DefaultArgs = strings.Fields(value)

	case KeyAuthorName:
		c.AuthorName = value

	case KeyAuthorEmail:
		c.AuthorEmail = value

	case KeyRowHeight:
		c.RowHeight, err = parsePositiveFloat(key, value)

	case KeyLaneWidth:
		c.LaneWidth, err = parsePositiveFloat(key, value)

	case KeyPageSize:
		c.PageSize, err = parsePositiveInt(key, value)

	case KeyDiffContext:
		c.DiffContext, err = parsePositiveInt(key, value)

	default:
		return errors.Errorf("unknown config: %v", key)
	}

	return err
}

func (c *Config) Get(key string) (string, error) {
	switch key {
	case KeyGitCmd:
		return c.Git, nil
	case KeyGitDefaultArgs:
		return strings.Join(c.DefaultArgs, " "), nil
	case KeyAuthorName:
		return c.AuthorName, nil
	case KeyAuthorEmail:
		return c.AuthorEmail, nil
	case KeyRowHeight:
		return strconv.FormatFloat(c.RowHeight, 'f', -1, 64), nil
	case KeyLaneWidth:
		return strconv.FormatFloat(c.LaneWidth, 'f', -1, 64), nil
	case KeyPageSize:
		return strconv.Itoa(c.PageSize), nil
	case KeyDiffContext:
		return strconv.Itoa(c.DiffContext), nil
	default:
		return "", errors.Errorf("unknown config: %v", key)
	}
}

func (c *Config) GitOptions() *repo.Options {
	return &repo.Options{
		Git:         c.Git,
		DefaultArgs: c.DefaultArgs,
		AuthorName:  c.AuthorName,
		AuthorEmail: c.AuthorEmail,
	}
}

func (c *Config) GraphOptions() *graph.Options {
	return &graph.Options{
		RowHeight: c.RowHeight,
		LaneWidth: c.LaneWidth,
	}
}

func (c *Config) DiffOptions() *diffview.Options {
	result := diffview.NewOptions()
	result.Context = c.DiffContext
	return result
}

func parsePositiveInt(key string, value string) (int, error) {
	v, err := strconv.Atoi(value)
	if err != nil || v <= 0 {
		return 0, errors.Errorf("%v must be a positive integer: %v", key, value)
	}
	return v, nil
}

func parsePositiveFloat(key string, value string) (float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil || v <= 0 {
		return 0, errors.Errorf("%v must be a positive number: %v", key, value)
	}
	return v, nil
}
