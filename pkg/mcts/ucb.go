package mcts

import "math"

// UCT score of an edge: avg + C * sqrt(2 * ln(parent visits) / (edge visits + 1))
func UCT[T MoveLike](edge *ActionNode[T], parentVisits uint32, c float64) float64 {
	return float64(edge.Average) +
		c*math.Sqrt(2*math.Log(float64(parentVisits))/float64(edge.Visits+1))
}

// Edge maximizing the UCT score, an unvisited edge is returned right away,
// so every child gets sampled once before any of them is revisited
func bestUCT[T MoveLike](node *Node[T], c float64) *ActionNode[T] {
	var best *ActionNode[T]
	bestScore := math.Inf(-1)

	for i := range node.Children {
		child := &node.Children[i]
		if child.Visits == 0 {
			return child
		}

		if score := UCT(child, node.Visits, c); score > bestScore {
			bestScore = score
			best = child
		}
	}
	return best
}

// Edge with most visits, the first one wins ties
func bestByVisits[T MoveLike](children []ActionNode[T]) *ActionNode[T] {
	var best *ActionNode[T]
	for i := range children {
		if best == nil || children[i].Visits > best.Visits {
			best = &children[i]
		}
	}
	return best
}

// Edge with the highest value (average, or prior when unvisited), the first one wins ties
func bestByAverage[T MoveLike](children []ActionNode[T]) *ActionNode[T] {
	var best *ActionNode[T]
	for i := range children {
		if best == nil || children[i].Value() > best.Value() {
			best = &children[i]
		}
	}
	return best
}

// Best child by the given policy, a decisive child always comes first
func BestChild[T MoveLike](node *Node[T], policy BestChildPolicy) *ActionNode[T] {
	if node == nil {
		return nil
	}
	if decisive := node.DecisiveChild(); decisive != nil {
		return decisive
	}

	switch policy {
	case BestChildAverage:
		return bestByAverage(node.Children)
	default:
		return bestByVisits(node.Children)
	}
}
