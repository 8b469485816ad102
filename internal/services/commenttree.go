package services

import (
	"html/template"

	"mudawwana/internal/models"
	"mudawwana/internal/utils"
)

// CommentNode is a comment with its replies attached.
type CommentNode struct {
	models.Comment
	ContentHTML template.HTML  `json:"content_html,omitempty"`
	Replies     []*CommentNode `json:"replies"`
}

// BuildTree turns an oldest-first flat list of one article's comments into
// top-level comments carrying their replies. Input order is kept at both
// levels. Replies whose parent is missing from the list are dropped. Depth is
// not enforced here: a reply pointing at another reply is attached to it.
func BuildTree(comments []models.Comment) []*CommentNode {
	nodes := make(map[uint]*CommentNode, len(comments))
	for i := range comments {
		nodes[comments[i].ID] = &CommentNode{
			Comment: comments[i],
			Replies: []*CommentNode{},
		}
	}

	roots := make([]*CommentNode, 0)
	for i := range comments {
		c := &comments[i]
		node := nodes[c.ID]
		if c.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[*c.ParentID]
		if !ok || parent == node {
			continue
		}
		parent.Replies = append(parent.Replies, node)
	}
	return roots
}

// RenderTree fills ContentHTML on every node.
func RenderTree(nodes []*CommentNode) {
	for _, n := range nodes {
		n.ContentHTML = utils.RenderMarkdown(n.Content)
		RenderTree(n.Replies)
	}
}
