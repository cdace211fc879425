package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/Dias221467/streamify/internal/models"
	"github.com/Dias221467/streamify/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Edges is one directed edge set with a unique (from, to) pair.
type Edges struct {
	db  *DB
	set *[]edge
}

func (s *Edges) index(from, to primitive.ObjectID) int {
	for i, e := range *s.set {
		if e.from == from && e.to == to {
			return i
		}
	}
	return -1
}

func (s *Edges) Exists(_ context.Context, from, to primitive.ObjectID) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failure("EdgeExists"); err != nil {
		return false, err
	}
	return s.index(from, to) >= 0, nil
}

func (s *Edges) Create(_ context.Context, from, to primitive.ObjectID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failure("EdgeCreate"); err != nil {
		return err
	}
	if s.index(from, to) >= 0 {
		return repository.ErrDuplicate
	}
	*s.set = append(*s.set, edge{from: from, to: to, at: time.Now().UTC()})
	return nil
}

// Insert adds an edge directly, bypassing failure injection. Used to set up races.
func (s *Edges) Insert(from, to primitive.ObjectID, at time.Time) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	*s.set = append(*s.set, edge{from: from, to: to, at: at})
}

func (s *Edges) Delete(_ context.Context, from, to primitive.ObjectID) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failure("EdgeDelete"); err != nil {
		return false, err
	}
	i := s.index(from, to)
	if i < 0 {
		return false, nil
	}
	*s.set = append((*s.set)[:i], (*s.set)[i+1:]...)
	return true, nil
}

func (s *Edges) CountInbound(_ context.Context, to primitive.ObjectID) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failure("CountInbound"); err != nil {
		return 0, err
	}
	return countTo(*s.set, to), nil
}

func countTo(set []edge, to primitive.ObjectID) int64 {
	var n int64
	for _, e := range set {
		if e.to == to {
			n++
		}
	}
	return n
}

func countFrom(set []edge, from primitive.ObjectID) int64 {
	var n int64
	for _, e := range set {
		if e.from == from {
			n++
		}
	}
	return n
}

func (s *Edges) List(_ context.Context, subject primitive.ObjectID, dir models.Direction, p, limit int) ([]models.Connection, int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failure("EdgeList"); err != nil {
		return nil, 0, err
	}

	var matched []edge
	for i := len(*s.set) - 1; i >= 0; i-- {
		e := (*s.set)[i]
		if (dir == models.Inbound && e.to == subject) || (dir == models.Outbound && e.from == subject) {
			matched = append(matched, e)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].at.After(matched[j].at) })

	conns := make([]models.Connection, 0, len(matched))
	for _, e := range matched {
		other := e.from
		if dir == models.Outbound {
			other = e.to
		}
		u, ok := s.db.users[other]
		if !ok {
			continue
		}
		conns = append(conns, models.Connection{User: public(u), Since: e.at})
	}
	docs, total := page(conns, p, limit)
	return docs, total, nil
}
