package service

import (
	"context"
	"sort"
	"sync"

	dmn "github.com/beka-birhanu/qmaze/domain"
	"github.com/google/uuid"
)

type nopLogger struct{}

func (nopLogger) Info(string)    {}
func (nopLogger) Warning(string) {}
func (nopLogger) Error(string)   {}

type memRepo struct {
	sync.Mutex
	mazes map[uuid.UUID]*dmn.Maze
}

func newMemRepo() *memRepo {
	return &memRepo{mazes: map[uuid.UUID]*dmn.Maze{}}
}

func (r *memRepo) Save(m *dmn.Maze) error {
	r.Lock()
	defer r.Unlock()
	r.mazes[m.ID] = m
	return nil
}

func (r *memRepo) ByID(id uuid.UUID) (*dmn.Maze, error) {
	r.Lock()
	defer r.Unlock()
	m, ok := r.mazes[id]
	if !ok {
		return nil, dmn.ErrMazeNotFound
	}
	return m, nil
}

type scored struct {
	score  float64
	member string
}

type memQueue struct {
	sync.Mutex
	queues map[string][]scored
}

func newMemQueue() *memQueue {
	return &memQueue{queues: map[string][]scored{}}
}

func (q *memQueue) Enqueue(_ context.Context, key string, score float64, member string) error {
	q.Lock()
	defer q.Unlock()
	q.queues[key] = append(q.queues[key], scored{score: score, member: member})
	sort.SliceStable(q.queues[key], func(a, b int) bool {
		return q.queues[key][a].score < q.queues[key][b].score
	})
	return nil
}

func (q *memQueue) Dequeue(_ context.Context, key string, amount int64) ([]string, error) {
	q.Lock()
	defer q.Unlock()
	queue := q.queues[key]
	n := int(amount)
	if n > len(queue) {
		n = len(queue)
	}
	out := make([]string, 0, n)
	for _, s := range queue[:n] {
		out = append(out, s.member)
	}
	q.queues[key] = queue[n:]
	return out, nil
}

func (q *memQueue) Count(_ context.Context, key string) (int64, error) {
	q.Lock()
	defer q.Unlock()
	return int64(len(q.queues[key])), nil
}
