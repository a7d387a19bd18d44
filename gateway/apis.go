package gateway

import (
	"github.com/David-HERS/HDF5-Data-Migrator/container"
	"github.com/David-HERS/HDF5-Data-Migrator/criteria"
	"github.com/David-HERS/HDF5-Data-Migrator/tree"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// RuleQuery carries the name criteria of a request.
type RuleQuery struct {
	In        []string `form:"in"`
	NotIn     []string `form:"not_in"`
	Starts    []string `form:"starts"`
	NotStarts []string `form:"not_starts"`
	Ends      []string `form:"ends"`
	NotEnds   []string `form:"not_ends"`
	Globs     []string `form:"glob"`
	NotGlobs  []string `form:"not_glob"`
	Operator  string   `form:"operator" binding:"omitempty,oneof=and or"`
}

func (q *RuleQuery) rule() (criteria.NameRule, error) {
	rule := criteria.NameRule{
		InPath:    q.In,
		NotInPath: q.NotIn,
		Starts:    q.Starts,
		NotStarts: q.NotStarts,
		Ends:      q.Ends,
		NotEnds:   q.NotEnds,
		Globs:     q.Globs,
		NotGlobs:  q.NotGlobs,
		Operator:  criteria.Operator(q.Operator),
	}

	if err := rule.ValidateGlobs(); err != nil {
		return rule, ErrGlobInvalid.WithData(err.Error())
	}

	return rule, nil
}

type treeEntry struct {
	Line  string `json:"line"`
	Path  string `json:"path"`
	Depth int    `json:"depth"`
	Dir   bool   `json:"dir"`
	Last  bool   `json:"last"`
}

func (srv *server) getTree(c *gin.Context) (interface{}, error) {
	var input struct {
		RuleQuery
		Path  string `form:"path" binding:"required"`
		Depth int    `form:"depth,default=2" binding:"min=0"`
	}

	if err := c.ShouldBindQuery(&input); err != nil {
		return nil, err
	}

	rule, err := input.rule()
	if err != nil {
		return nil, err
	}

	root, err := srv.resolve(input.Path)
	if err != nil {
		return nil, err
	}

	walker, err := tree.Walk(root, tree.WalkOption{
		Predicate: criteria.ByName(rule),
		MaxDepth:  input.Depth,
	})
	if err != nil {
		var notFound *tree.PathNotFoundError
		if errors.As(err, &notFound) {
			return nil, ErrPathNotFound.WithData(input.Path)
		}
		return nil, err
	}

	nodes, err := walker.Collect()
	if err != nil {
		return nil, err
	}

	entries := make([]treeEntry, len(nodes))
	for i, node := range nodes {
		entries[i] = treeEntry{
			Line:  node.Render(),
			Path:  node.Path(),
			Depth: node.Depth(),
			Dir:   node.IsDir(),
			Last:  node.IsLast(),
		}
	}

	srv.logger.WithField("root", root).WithField("nodes", len(entries)).Debug("Tree listed")

	return entries, nil
}

func (srv *server) getKeys(c *gin.Context) (interface{}, error) {
	var input struct {
		RuleQuery
		Container string `form:"container" binding:"required"`
		Recursion int    `form:"recursion,default=10"`
		Datasets  bool   `form:"datasets"`
	}

	if err := c.ShouldBindQuery(&input); err != nil {
		return nil, err
	}

	rule, err := input.rule()
	if err != nil {
		return nil, err
	}

	name, err := srv.resolve(input.Container)
	if err != nil {
		return nil, err
	}

	file, err := container.Open(name)
	if err != nil {
		return nil, ErrContainerInvalid.WithData(err.Error())
	}
	defer file.Close()

	opt := container.KeyOption{MaxRecursion: input.Recursion}
	if !rule.Empty() {
		opt.DataCriteria = criteria.ByName(rule)
	}
	if input.Datasets {
		opt.ObjectCriteria = criteria.IsDataset
	}

	keys, err := container.Keys(file, opt)
	if err != nil {
		return nil, err
	}

	srv.metrics.keys.Observe(float64(len(keys)))
	srv.logger.WithField("container", name).WithField("keys", len(keys)).Debug("Keys listed")

	return keys, nil
}
