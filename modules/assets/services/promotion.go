package services

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/exec-platform/asset-management/modules/assets/domain/asset"
)

// PromotionPropagator walks an asset's subtree and promotes every
// reachable unpromoted node. The walk is iterative and keeps a visited
// set, so parent cycles terminate and each node is handled once.
// Already-promoted nodes are passed through without raising an event,
// but their children are still visited: a promoted node can have
// unpromoted descendants if children were attached after its promotion.
type PromotionPropagator struct {
	repo asset.Repository
}

func NewPromotionPropagator(repo asset.Repository) *PromotionPropagator {
	return &PromotionPropagator{repo: repo}
}

// PromoteSubtree returns the nodes that transitioned to promoted, in
// visit order, together with one promotion event per transition. The
// caller is responsible for persisting the returned nodes and emitting
// the events inside its unit of work.
func (p *PromotionPropagator) PromoteSubtree(ctx context.Context, root asset.Asset) ([]asset.Asset, []*asset.PromotedEvent, error) {
	var (
		promoted []asset.Asset
		events   []*asset.PromotedEvent
	)

	visited := map[uuid.UUID]struct{}{}
	stack := []asset.Asset{root}

	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, seen := visited[node.ID()]; seen {
			continue
		}
		visited[node.ID()] = struct{}{}

		if !node.Promoted() {
			node = node.Promote()
			promoted = append(promoted, node)
			events = append(events, asset.NewPromotedEvent(node))
		}

		children, err := p.repo.GetByParentID(ctx, node.ID())
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to load children during promotion")
		}
		for i := len(children) - 1; i >= 0; i-- {
			if _, seen := visited[children[i].ID()]; !seen {
				stack = append(stack, children[i])
			}
		}
	}

	return promoted, events, nil
}
