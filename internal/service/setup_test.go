package service_test

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"paxala/internal/database/dbtest"
	"paxala/internal/notify"
	"paxala/internal/repository"
	"paxala/internal/service"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type env struct {
	db     *gorm.DB
	mailer *notify.LogMailer
	cache  *memCache

	users      *repository.UserRepository
	projects   *repository.ProjectRepository
	milestones *repository.MilestoneRepository
	tasks      *repository.TaskRepository

	projectSvc   *service.ProjectService
	contactSvc   *service.ContactService
	milestoneSvc *service.MilestoneService
	paymentSvc   *service.PaymentService
	taskSvc      *service.TaskService
	commentSvc   *service.CommentService
	bookingSvc   *service.BookingService
	inquirySvc   *service.InquiryService
	contentSvc   *service.ContentService
	userSvc      *service.UserService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := dbtest.New(t)
	log := zap.NewNop()

	e := &env{
		db:         db,
		mailer:     notify.NewLogMailer(log),
		cache:      newMemCache(),
		users:      repository.NewUserRepository(db),
		projects:   repository.NewProjectRepository(db),
		milestones: repository.NewMilestoneRepository(db),
		tasks:      repository.NewTaskRepository(db),
	}
	contacts := repository.NewContactRepository(db)

	e.projectSvc = service.NewProjectService(e.projects, e.users, contacts)
	e.contactSvc = service.NewContactService(contacts, e.users)
	e.milestoneSvc = service.NewMilestoneService(e.projects, e.milestones, log)
	e.paymentSvc = service.NewPaymentService(e.projects, e.milestones, log)
	e.taskSvc = service.NewTaskService(e.milestones, e.tasks, e.users, log, false)
	e.commentSvc = service.NewCommentService(repository.NewCommentRepository(db))
	e.bookingSvc = service.NewBookingService(repository.NewBookingRepository(db), e.mailer, log)
	e.inquirySvc = service.NewInquiryService(repository.NewInquiryRepository(db), e.mailer, "hello@studio.test", log)
	e.contentSvc = service.NewContentService(repository.NewContentRepository(db), e.cache, log)
	e.userSvc = service.NewUserService(e.users)
	return e
}

// memCache is an in-process cache.Cache.
type memCache struct {
	mu    sync.Mutex
	items map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{items: map[string][]byte{}}
}

func (c *memCache) Get(_ context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	raw, ok := c.items[key]
	c.mu.Unlock()
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (c *memCache) Set(_ context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.items[key] = raw
	c.mu.Unlock()
	return nil
}

func (c *memCache) DeletePrefix(_ context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.items {
		if strings.HasPrefix(k, prefix) {
			delete(c.items, k)
		}
	}
	return nil
}

func (c *memCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func ptr[T any](v T) *T { return &v }
