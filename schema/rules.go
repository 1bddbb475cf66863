package schema

import (
	"slices"

	"github.com/samber/lo"
)

const (
	LeafNodeFill    = "leafNodeFill"
	NonLeafNodeFill = "nonLeafNodeFill"
)

var treeNode = MustNew(
	Entry{
		Key: LeafNodeFill,
		Descriptor: Descriptor{
			Type:    TypeColor,
			Title:   "叶子节点填充色",
			Default: "#888",
		},
	},
	Entry{
		Key: NonLeafNodeFill,
		Descriptor: Descriptor{
			Type:    TypeColor,
			Title:   "非叶子节点填充色",
			Default: "#fff",
		},
	},
)

// TreeNode returns the node styling of the tree chart test page.
func TreeNode() *Table {
	return treeNode
}

var rules = map[string]*Table{
	"tree-node": treeNode,
}

// Rules returns the rule set registered under name.
func Rules(name string) (*Table, bool) {
	t, ok := rules[name]
	return t, ok
}

func RuleNames() []string {
	names := lo.Keys(rules)
	slices.Sort(names)
	return names
}
