package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dias221467/streamify/internal/apperrors"
	"github.com/Dias221467/streamify/internal/models"
	"github.com/Dias221467/streamify/internal/repository"
	"github.com/Dias221467/streamify/pkg/logger"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// relationKind describes one edge set: how it is named and which side
// effects a toggle produces.
type relationKind struct {
	name        string
	selfMessage string
	notifType   models.NotificationType
	onActivity  models.ActivityType
	offActivity models.ActivityType
	message     string // formatted with the actor's username
}

var (
	followKind = relationKind{
		name:        "follow",
		selfMessage: "You cannot follow yourself",
		notifType:   models.NotificationFollow,
		onActivity:  models.ActivityFollow,
		offActivity: models.ActivityUnfollow,
		message:     "%s started following you",
	}
	subscriptionKind = relationKind{
		name:        "subscription",
		selfMessage: "You cannot subscribe to your own channel",
		notifType:   models.NotificationSubscribe,
		onActivity:  models.ActivitySubscribe,
		offActivity: models.ActivityUnsubscribe,
		message:     "%s subscribed to your channel",
	}
)

// RelationshipService toggles and lists one kind of user-to-user edge
// (follows or channel subscriptions).
type RelationshipService struct {
	edges    EdgeStore
	users    UserStore
	queue    NotificationQueue
	recorder Recorder
	kind     relationKind
}

func NewFollowService(edges EdgeStore, users UserStore, queue NotificationQueue, recorder Recorder) *RelationshipService {
	return &RelationshipService{edges: edges, users: users, queue: queue, recorder: recorder, kind: followKind}
}

func NewSubscriptionService(edges EdgeStore, users UserStore, queue NotificationQueue, recorder Recorder) *RelationshipService {
	return &RelationshipService{edges: edges, users: users, queue: queue, recorder: recorder, kind: subscriptionKind}
}

// Toggle flips the actor -> target edge and returns the new state with a
// freshly counted number of inbound edges on the target.
func (s *RelationshipService) Toggle(ctx context.Context, actor, target primitive.ObjectID) (*models.ToggleResult, error) {
	if actor == target {
		return nil, apperrors.Validation(s.kind.selfMessage)
	}
	ok, err := s.users.Exists(ctx, target)
	if err != nil {
		return nil, apperrors.Internal("failed to look up user", err)
	}
	if !ok {
		return nil, apperrors.NotFound("user not found")
	}

	exists, err := s.edges.Exists(ctx, actor, target)
	if err != nil {
		return nil, apperrors.Internal(fmt.Sprintf("failed to check %s", s.kind.name), err)
	}

	active := !exists
	if exists {
		if _, err := s.edges.Delete(ctx, actor, target); err != nil {
			return nil, apperrors.Internal(fmt.Sprintf("failed to remove %s", s.kind.name), err)
		}
		s.record(ctx, actor, s.kind.offActivity, target)
	} else {
		err := s.edges.Create(ctx, actor, target)
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			// A concurrent toggle inserted the edge first; the edge exists either way.
		case err != nil:
			return nil, apperrors.Internal(fmt.Sprintf("failed to create %s", s.kind.name), err)
		default:
			s.notify(ctx, actor, target)
			s.record(ctx, actor, s.kind.onActivity, target)
		}
	}

	count, err := s.edges.CountInbound(ctx, target)
	if err != nil {
		return nil, apperrors.Internal(fmt.Sprintf("failed to count %s edges", s.kind.name), err)
	}

	logger.Log.WithFields(logrus.Fields{
		"actor":  actor.Hex(),
		"target": target.Hex(),
		"kind":   s.kind.name,
		"active": active,
	}).Info("Relationship toggled")

	return &models.ToggleResult{Active: active, Count: count}, nil
}

// notify enqueues the new-edge notification, naming the actor when possible.
func (s *RelationshipService) notify(ctx context.Context, actor, target primitive.ObjectID) {
	name := "Someone"
	if u, err := s.users.GetUserByID(ctx, actor); err == nil && u.Username != "" {
		name = u.Username
	}
	s.queue.Enqueue(target, actor, s.kind.notifType, fmt.Sprintf(s.kind.message, name))
}

func (s *RelationshipService) record(ctx context.Context, actor primitive.ObjectID, typ models.ActivityType, target primitive.ObjectID) {
	if err := s.recorder.Record(ctx, actor, typ, models.NewEntityRef(models.EntityUser, target), nil); err != nil {
		logger.Log.WithError(err).Warn("Activity rejected")
	}
}

// Check reports whether actor has an edge to target.
func (s *RelationshipService) Check(ctx context.Context, actor, target primitive.ObjectID) (bool, error) {
	ok, err := s.edges.Exists(ctx, actor, target)
	if err != nil {
		return false, apperrors.Internal(fmt.Sprintf("failed to check %s", s.kind.name), err)
	}
	return ok, nil
}

// List pages the subject's inbound or outbound edges, newest first.
func (s *RelationshipService) List(ctx context.Context, subject primitive.ObjectID, dir models.Direction, page, limit int) (*models.Page[models.Connection], error) {
	ok, err := s.users.Exists(ctx, subject)
	if err != nil {
		return nil, apperrors.Internal("failed to look up user", err)
	}
	if !ok {
		return nil, apperrors.NotFound("user not found")
	}

	page, limit = NormalizePage(page, limit)
	conns, total, err := s.edges.List(ctx, subject, dir, page, limit)
	if err != nil {
		return nil, apperrors.Internal(fmt.Sprintf("failed to list %s edges", s.kind.name), err)
	}
	p := models.NewPage(conns, total, page, limit)
	return &p, nil
}
