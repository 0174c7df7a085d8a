package services

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/yukikurage/daybook-api/internal/models"
	"github.com/yukikurage/daybook-api/internal/push"
	"github.com/yukikurage/daybook-api/internal/repository"
)

// SweepReport summarizes one reminder sweep.
type SweepReport struct {
	Scanned   int
	Notified  int
	Delivered int
	Failed    int
}

// ReminderService turns upcoming due dates into notifications.
type ReminderService struct {
	todoRepo         repository.TodoRepository
	notificationRepo repository.NotificationRepository
	notifier         push.Notifier
	window           time.Duration
}

// NewReminderService creates a new ReminderService
func NewReminderService(todoRepo repository.TodoRepository, notificationRepo repository.NotificationRepository, notifier push.Notifier, window time.Duration) *ReminderService {
	return &ReminderService{
		todoRepo:         todoRepo,
		notificationRepo: notificationRepo,
		notifier:         notifier,
		window:           window,
	}
}

// Sweep reminds owners of open todos due in (now, now+window]. Each todo is
// reminded once; push failures are counted and do not stop the sweep.
func (s *ReminderService) Sweep(ctx context.Context, now time.Time) (SweepReport, error) {
	var report SweepReport
	now = now.UTC()

	todos, err := s.todoRepo.ListDueBetween(now, now.Add(s.window))
	if err != nil {
		return report, fmt.Errorf("failed to find due todos: %w", err)
	}
	report.Scanned = len(todos)

	for i := range todos {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		todo := &todos[i]

		title, body := reminderText(todo)
		notification := &models.Notification{
			UserID: todo.UserID,
			TodoID: &todo.ID,
			Title:  title,
			Body:   body,
			Date:   now,
		}
		if err := s.notificationRepo.Create(notification); err != nil {
			log.Printf("reminder: failed to store notification for todo %d: %v", todo.ID, err)
			report.Failed++
			continue
		}
		report.Notified++

		if todo.User.HasPushSubscription() {
			msg := push.Message{
				Title: title,
				Body:  body,
				Data: map[string]string{
					"todoId":         strconv.FormatUint(todo.ID, 10),
					"notificationId": strconv.FormatUint(notification.ID, 10),
				},
			}
			if err := s.notifier.Send(ctx, todo.User.PushSubscription.Token, msg); err != nil {
				log.Printf("reminder: push for todo %d to user %d failed: %v", todo.ID, todo.UserID, err)
				report.Failed++
			} else {
				report.Delivered++
			}
		}

		if err := s.todoRepo.MarkReminded(todo.ID, now); err != nil {
			log.Printf("reminder: failed to mark todo %d as reminded: %v", todo.ID, err)
		}
	}

	return report, nil
}

func reminderText(todo *models.Todo) (string, string) {
	title := "Reminder: " + todo.Title
	body := fmt.Sprintf("\"%s\" is due %s", todo.Title, todo.DueDate.UTC().Format("Mon, 02 Jan 2006 15:04 MST"))
	return title, body
}
