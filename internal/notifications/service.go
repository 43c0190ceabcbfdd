package notifications

import (
	"context"
	"fmt"

	"github.com/javohirtm/ombor-backend/pkg/db/models"
	"github.com/javohirtm/ombor-backend/pkg/enums"
	pkgerrors "github.com/javohirtm/ombor-backend/pkg/errors"
	"github.com/javohirtm/ombor-backend/pkg/pagination"
)

// NotifyInput describes one notification row to write.
type NotifyInput struct {
	Title   string
	Body    *string
	Image   *string
	Type    enums.NotificationStatus
	UserID  *int64
	OrderID *int64
}

type service struct {
	repo Repository
}

// NewService builds the notification service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("notifications repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Notify(ctx context.Context, input NotifyInput) (*models.Notification, error) {
	if input.Title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "notification title required")
	}
	kind := input.Type
	if kind == "" {
		kind = enums.NotificationStatusInfo
	}
	if !kind.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid notification type")
	}

	notification := &models.Notification{
		Title:   input.Title,
		Body:    input.Body,
		Image:   input.Image,
		Type:    kind,
		UserID:  input.UserID,
		OrderID: input.OrderID,
	}
	if _, err := s.repo.Create(ctx, notification); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create notification")
	}
	return notification, nil
}

func (s *service) List(ctx context.Context, userID int64, params pagination.Params) (*pagination.Page, error) {
	notifications, total, err := s.repo.ListByUser(ctx, userID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list notifications")
	}
	page := pagination.NewPage(notifications, total, params)
	return &page, nil
}

// MarkRead flags the given notifications as read. An empty id list
// marks everything the user has.
func (s *service) MarkRead(ctx context.Context, userID int64, ids []int64) (int64, error) {
	updated, err := s.repo.MarkRead(ctx, userID, ids)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark notifications read")
	}
	return updated, nil
}
