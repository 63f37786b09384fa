package gitlog

import (
	"io"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/pkg/errors"

	"github.com/pescuma/gitweb/lib/caches"
	"github.com/pescuma/gitweb/lib/model"
)

// GoGitSource reads history straight from the repository files, without
// running the git binary.
type GoGitSource struct {
	rootDir     string
	repo        *caches.Lazy[*git.Repository]
	decorations *caches.Lazy[map[plumbing.Hash][]string]
}

func NewGoGitSource(rootDir string) *GoGitSource {
	result := &GoGitSource{
		rootDir: rootDir,
	}

	result.repo = caches.NewLazy(func() (*git.Repository, error) {
		repo, err := git.PlainOpenWithOptions(rootDir, &git.PlainOpenOptions{DetectDotGit: true})
		if err != nil {
			return nil, errors.Wrapf(err, "error opening repository %v", rootDir)
		}
		return repo, nil
	})
	result.decorations = caches.NewLazy(result.loadDecorations)

	return result
}

// Refresh forgets decorations, so moved branches show up on the next page.
func (s *GoGitSource) Refresh() {
	s.decorations.Reset()
}

func (s *GoGitSource) Page(ref string, maxCount int) (*Page, error) {
	if maxCount <= 0 {
		maxCount = DefaultPageSize
	}

	repo, err := s.repo.Get()
	if err != nil {
		return nil, err
	}

	decorations, err := s.decorations.Get()
	if err != nil {
		return nil, err
	}

	from, err := resolve(repo, ref)
	if err != nil {
		return nil, err
	}

	it, err := repo.Log(&git.LogOptions{
		From:  from,
		Order: git.LogOrderCommitterTime,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "error listing history of %v", ref)
	}
	defer it.Close()

	var commits []*model.Commit
	for len(commits) <= maxCount {
		gc, err := it.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "error listing history of %v", ref)
		}

		commits = append(commits, toModelCommit(gc, decorations[gc.Hash]))
	}

	return NewPage(commits, maxCount), nil
}

func resolve(repo *git.Repository, ref string) (plumbing.Hash, error) {
	if ref == "" || ref == "HEAD" {
		head, err := repo.Head()
		if err != nil {
			return plumbing.ZeroHash, errors.Wrap(err, "error resolving HEAD")
		}
		return head.Hash(), nil
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return plumbing.ZeroHash, errors.Wrapf(err, "error resolving %v", ref)
	}

	return *hash, nil
}

// loadDecorations builds the same names git log --decorate=full prints.
func (s *GoGitSource) loadDecorations() (map[plumbing.Hash][]string, error) {
	repo, err := s.repo.Get()
	if err != nil {
		return nil, err
	}

	result := map[plumbing.Hash][]string{}

	var headTarget plumbing.ReferenceName
	head, err := repo.Reference(plumbing.HEAD, false)
	if err == nil && head.Type() == plumbing.SymbolicReference {
		headTarget = head.Target()
	}

	refs, err := repo.References()
	if err != nil {
		return nil, errors.Wrap(err, "error listing references")
	}

	err = refs.ForEach(func(ref *plumbing.Reference) error {
		if ref.Type() != plumbing.HashReference {
			return nil
		}

		name := ref.Name()
		hash := ref.Hash()

		switch {
		case name.IsTag():
			tag, err := repo.TagObject(hash)
			if err == nil {
				hash = tag.Target
			}
			result[hash] = append(result[hash], "tag: "+name.String())

		case name == headTarget:
			result[hash] = append(result[hash], "HEAD -> "+name.String())

		case name.IsBranch() || name.IsRemote():
			result[hash] = append(result[hash], name.String())
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if headTarget == "" && head != nil {
		result[head.Hash()] = append(result[head.Hash()], "HEAD")
	}

	for _, names := range result {
		sort.Slice(names, func(i, j int) bool {
			hi := strings.HasPrefix(names[i], "HEAD")
			hj := strings.HasPrefix(names[j], "HEAD")
			if hi != hj {
				return hi
			}
			return names[i] < names[j]
		})
	}

	return result, nil
}

func toModelCommit(gc *object.Commit, decorations []string) *model.Commit {
	result := &model.Commit{
		ID:   gc.Hash.String(),
		Tree: gc.TreeHash.String(),
		Author: model.Person{
			Name:  gc.Author.Name,
			Email: gc.Author.Email,
			Date:  gc.Author.When.UTC(),
		},
		Committer: model.Person{
			Name:  gc.Committer.Name,
			Email: gc.Committer.Email,
			Date:  gc.Committer.When.UTC(),
		},
		Message: strings.TrimSpace(gc.Message),
	}

	for _, p := range gc.ParentHashes {
		result.Parents = append(result.Parents, p.String())
	}

	for _, d := range decorations {
		result.Refs = append(result.Refs, model.ParseRef(d))
	}

	return result
}
