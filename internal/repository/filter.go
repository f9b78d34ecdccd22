package repository

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"paxala/internal/apperr"
	"paxala/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Page is a limit/offset window shared by list filters.
type Page struct {
	Limit  int
	Offset int
}

func parsePage(q url.Values) (Page, error) {
	p := Page{Limit: defaultPageSize}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxPageSize {
			return p, apperr.Validation("limit must be between 1 and %d", maxPageSize)
		}
		p.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return p, apperr.Validation("offset must be a non-negative integer")
		}
		p.Offset = n
	}
	return p, nil
}

func (p Page) scope(db *gorm.DB) *gorm.DB {
	limit := p.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	return db.Limit(limit).Offset(p.Offset)
}

// TaskFilter narrows the tasks of one milestone.
type TaskFilter struct {
	MilestoneID uuid.UUID
	Status      *model.TaskStatus
	Priority    *model.TaskPriority
	AssigneeID  *uuid.UUID
	VisibleOnly bool
}

func TaskFilterFromQuery(milestoneID uuid.UUID, q url.Values) (TaskFilter, error) {
	f := TaskFilter{MilestoneID: milestoneID}
	if v := q.Get("status"); v != "" {
		s := model.TaskStatus(strings.ToUpper(v))
		f.Status = &s
	}
	if v := q.Get("priority"); v != "" {
		p := model.TaskPriority(strings.ToUpper(v))
		f.Priority = &p
	}
	if v := q.Get("assigneeId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return f, apperr.Validation("assigneeId must be a UUID")
		}
		f.AssigneeID = &id
	}
	return f, f.Validate()
}

func (f TaskFilter) Validate() error {
	if f.MilestoneID == uuid.Nil {
		return apperr.Validation("milestone is required")
	}
	if f.Status != nil && !f.Status.Valid() {
		return apperr.Validation("unknown task status %q", *f.Status)
	}
	if f.Priority != nil && !f.Priority.Valid() {
		return apperr.Validation("unknown task priority %q", *f.Priority)
	}
	return nil
}

func (f TaskFilter) scope(db *gorm.DB) *gorm.DB {
	db = db.Where("milestone_id = ?", f.MilestoneID)
	if f.Status != nil {
		db = db.Where("status = ?", *f.Status)
	}
	if f.Priority != nil {
		db = db.Where("priority = ?", *f.Priority)
	}
	if f.AssigneeID != nil {
		db = db.Where("assignee_id = ?", *f.AssigneeID)
	}
	if f.VisibleOnly {
		db = db.Where("is_visible = ?", true)
	}
	return db
}

type BookingFilter struct {
	Status *model.BookingStatus
	Date   string
	Page   Page
}

func BookingFilterFromQuery(q url.Values) (BookingFilter, error) {
	var f BookingFilter
	if v := q.Get("status"); v != "" {
		s := model.BookingStatus(strings.ToUpper(v))
		f.Status = &s
	}
	f.Date = q.Get("date")
	page, err := parsePage(q)
	if err != nil {
		return f, err
	}
	f.Page = page
	return f, f.Validate()
}

func (f BookingFilter) Validate() error {
	if f.Status != nil && !f.Status.Valid() {
		return apperr.Validation("unknown booking status %q", *f.Status)
	}
	if f.Date != "" && !dateRe.MatchString(f.Date) {
		return apperr.Validation("date must be YYYY-MM-DD")
	}
	return nil
}

func (f BookingFilter) scope(db *gorm.DB) *gorm.DB {
	if f.Status != nil {
		db = db.Where("status = ?", *f.Status)
	}
	if f.Date != "" {
		db = db.Where("date = ?", f.Date)
	}
	return f.Page.scope(db)
}

type InquiryFilter struct {
	Status *model.InquiryStatus
	Page   Page
}

func InquiryFilterFromQuery(q url.Values) (InquiryFilter, error) {
	var f InquiryFilter
	if v := q.Get("status"); v != "" {
		s := model.InquiryStatus(strings.ToUpper(v))
		f.Status = &s
	}
	page, err := parsePage(q)
	if err != nil {
		return f, err
	}
	f.Page = page
	return f, f.Validate()
}

func (f InquiryFilter) Validate() error {
	if f.Status != nil && !f.Status.Valid() {
		return apperr.Validation("unknown inquiry status %q", *f.Status)
	}
	return nil
}

func (f InquiryFilter) scope(db *gorm.DB) *gorm.DB {
	if f.Status != nil {
		db = db.Where("status = ?", *f.Status)
	}
	return f.Page.scope(db)
}

// ContentFilter applies to blog posts and portfolio items. Category and
// Featured only apply to portfolio items.
type ContentFilter struct {
	PublishedOnly bool
	Category      string
	Featured      *bool
	Page          Page
}

func ContentFilterFromQuery(q url.Values, publishedOnly bool) (ContentFilter, error) {
	f := ContentFilter{PublishedOnly: publishedOnly, Category: strings.TrimSpace(q.Get("category"))}
	if v := q.Get("featured"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return f, apperr.Validation("featured must be true or false")
		}
		f.Featured = &b
	}
	page, err := parsePage(q)
	if err != nil {
		return f, err
	}
	f.Page = page
	return f, f.Validate()
}

func (f ContentFilter) Validate() error {
	if len(f.Category) > 64 {
		return apperr.Validation("category is too long")
	}
	return nil
}

// CacheKey identifies the filtered listing in the content cache.
func (f ContentFilter) CacheKey() string {
	featured := "any"
	if f.Featured != nil {
		featured = strconv.FormatBool(*f.Featured)
	}
	return strings.Join([]string{
		"pub=" + strconv.FormatBool(f.PublishedOnly),
		"cat=" + f.Category,
		"feat=" + featured,
		"l=" + strconv.Itoa(f.Page.Limit),
		"o=" + strconv.Itoa(f.Page.Offset),
	}, ";")
}

func (f ContentFilter) postScope(db *gorm.DB) *gorm.DB {
	if f.PublishedOnly {
		db = db.Where("published = ?", true)
	}
	return f.Page.scope(db)
}

func (f ContentFilter) portfolioScope(db *gorm.DB) *gorm.DB {
	if f.PublishedOnly {
		db = db.Where("published = ?", true)
	}
	if f.Category != "" {
		db = db.Where("category = ?", f.Category)
	}
	if f.Featured != nil {
		db = db.Where("featured = ?", *f.Featured)
	}
	return f.Page.scope(db)
}
