package bnb

import "github.com/chemoseq/rcpsp/branch"

// queueItem wraps a search node with an insertion sequence number so the
// priority queue can break lower-bound ties by arrival order, matching
// spec.md §5's ordering guarantee.
type queueItem struct {
	node *branch.Node
	seq  int
}

// priorityQueue is a container/heap.Interface over queueItem, ordered by
// ascending LowerBound with insertion-order tie-breaking.
type priorityQueue []*queueItem

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].node.LowerBound != pq[j].node.LowerBound {
		return pq[i].node.LowerBound < pq[j].node.LowerBound
	}
	return pq[i].seq < pq[j].seq
}

func (pq priorityQueue) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *priorityQueue) Push(x any) {
	*pq = append(*pq, x.(*queueItem))
}

func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]
	return item
}
