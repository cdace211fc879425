// Package memstore is an in-memory implementation of the repository
// interfaces used by services. It backs service and handler tests.
package memstore

import (
	"sync"
	"time"

	"github.com/Dias221467/streamify/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type edge struct {
	from, to primitive.ObjectID
	at       time.Time
}

// DB holds every collection behind one lock.
type DB struct {
	mu sync.Mutex

	users    map[primitive.ObjectID]models.User
	videos   map[primitive.ObjectID]models.Video
	tweets   map[primitive.ObjectID]models.Tweet
	comments []models.Comment

	follows       []edge
	subscriptions []edge
	likes         []edge

	activities    []models.Activity
	notifications []models.Notification
	histories     map[primitive.ObjectID]models.History
	watchLater    map[primitive.ObjectID]models.WatchLater

	failures  map[string]error
	conflicts map[string]int
}

func New() *DB {
	return &DB{
		users:      map[primitive.ObjectID]models.User{},
		videos:     map[primitive.ObjectID]models.Video{},
		tweets:     map[primitive.ObjectID]models.Tweet{},
		histories:  map[primitive.ObjectID]models.History{},
		watchLater: map[primitive.ObjectID]models.WatchLater{},
		failures:   map[string]error{},
		conflicts:  map[string]int{},
	}
}

// Fail makes every later call of the named method (e.g. "CreateNotification")
// return err. A nil err removes the failure.
func (db *DB) Fail(method string, err error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if err == nil {
		delete(db.failures, method)
		return
	}
	db.failures[method] = err
}

// ConflictNext makes the next n saves of a list ("history" or "watch_later")
// lose their version check.
func (db *DB) ConflictNext(list string, n int) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.conflicts[list] = n
}

// failure must be called with mu held.
func (db *DB) failure(method string) error {
	return db.failures[method]
}

func (db *DB) AddUser(u models.User) models.User {
	db.mu.Lock()
	defer db.mu.Unlock()
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	db.users[u.ID] = u
	return u
}

func (db *DB) AddVideo(v models.Video) models.Video {
	db.mu.Lock()
	defer db.mu.Unlock()
	if v.ID.IsZero() {
		v.ID = primitive.NewObjectID()
	}
	db.videos[v.ID] = v
	return v
}

func (db *DB) DeleteVideo(id primitive.ObjectID) {
	db.mu.Lock()
	defer db.mu.Unlock()
	delete(db.videos, id)
}

func (db *DB) AddTweet(t models.Tweet) models.Tweet {
	db.mu.Lock()
	defer db.mu.Unlock()
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	db.tweets[t.ID] = t
	return t
}

func (db *DB) AddComment(c models.Comment) models.Comment {
	db.mu.Lock()
	defer db.mu.Unlock()
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	db.comments = append(db.comments, c)
	return c
}

// Accessors returning the per-collection stores.

func (db *DB) Users() *Users { return &Users{db: db} }
func (db *DB) Videos() *Videos { return &Videos{db: db} }
func (db *DB) Tweets() *Tweets { return &Tweets{db: db} }
func (db *DB) Follows() *Edges { return &Edges{db: db, set: &db.follows} }
func (db *DB) Subscriptions() *Edges { return &Edges{db: db, set: &db.subscriptions} }
func (db *DB) TweetLikes() *Edges { return &Edges{db: db, set: &db.likes} }
func (db *DB) Activities() *Activities { return &Activities{db: db} }
func (db *DB) Entities() *Entities { return &Entities{db: db} }
func (db *DB) Notifications() *Notifications { return &Notifications{db: db} }
func (db *DB) Histories() *Histories { return &Histories{db: db} }
func (db *DB) WatchLater() *WatchLaterLists { return &WatchLaterLists{db: db} }
func (db *DB) Profiles() *Profiles { return &Profiles{db: db} }

func page[T any](all []T, p, limit int) ([]T, int64) {
	start := (p - 1) * limit
	if start > len(all) {
		start = len(all)
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	out := make([]T, end-start)
	copy(out, all[start:end])
	return out, int64(len(all))
}

func public(u models.User) models.PublicUser {
	return u.Public()
}
