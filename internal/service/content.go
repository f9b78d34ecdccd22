package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"paxala/internal/apperr"
	"paxala/internal/cache"
	"paxala/internal/i18n"
	"paxala/internal/metrics"
	"paxala/internal/model"
	"paxala/internal/repository"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

const (
	blogPrefix      = "blog:"
	portfolioPrefix = "portfolio:"
)

var slugRe = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// PostView is a blog post rendered in one locale.
type PostView struct {
	ID          uuid.UUID   `json:"id"`
	Slug        string      `json:"slug"`
	Locale      i18n.Locale `json:"locale"`
	Title       string      `json:"title"`
	Excerpt     string      `json:"excerpt"`
	Content     string      `json:"content,omitempty"`
	CoverImage  string      `json:"coverImage"`
	PublishedAt *time.Time  `json:"publishedAt,omitempty"`
}

// PortfolioView is a portfolio item rendered in one locale.
type PortfolioView struct {
	ID           uuid.UUID   `json:"id"`
	Slug         string      `json:"slug"`
	Locale       i18n.Locale `json:"locale"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	Category     string      `json:"category"`
	Client       string      `json:"client"`
	MediaURL     string      `json:"mediaUrl"`
	ThumbnailURL string      `json:"thumbnailUrl"`
	Featured     bool        `json:"featured"`
}

func postView(p *model.BlogPost, l i18n.Locale, withContent bool) PostView {
	v := PostView{
		ID:          p.ID,
		Slug:        p.Slug,
		Locale:      l,
		Title:       p.Title.In(l),
		Excerpt:     p.Excerpt.In(l),
		CoverImage:  p.CoverImage,
		PublishedAt: p.PublishedAt,
	}
	if withContent {
		v.Content = p.Content.In(l)
	}
	return v
}

func portfolioView(p *model.PortfolioItem, l i18n.Locale) PortfolioView {
	return PortfolioView{
		ID:           p.ID,
		Slug:         p.Slug,
		Locale:       l,
		Title:        p.Title.In(l),
		Description:  p.Description.In(l),
		Category:     p.Category,
		Client:       p.Client,
		MediaURL:     p.MediaURL,
		ThumbnailURL: p.ThumbnailURL,
		Featured:     p.Featured,
	}
}

// ContentService serves the public blog and portfolio and their admin
// editing. Public reads go through the cache; every write drops the
// cached entries of its kind.
type ContentService struct {
	content *repository.ContentRepository
	cache   cache.Cache
	policy  *bluemonday.Policy
	log     *zap.Logger
	now     func() time.Time
}

func NewContentService(content *repository.ContentRepository, c cache.Cache, log *zap.Logger) *ContentService {
	return &ContentService{
		content: content,
		cache:   c,
		policy:  bluemonday.UGCPolicy(),
		log:     log,
		now:     time.Now,
	}
}

// cached fills dst from the cache, or runs load (which fills dst) and
// stores the result.
func (s *ContentService) cached(ctx context.Context, key string, dst any, load func() error) error {
	hit, err := s.cache.Get(ctx, key, dst)
	if err != nil {
		s.log.Warn("content cache read failed", zap.String("key", key), zap.Error(err))
	}
	metrics.RecordCacheLookup(hit)
	if hit {
		return nil
	}

	if err := load(); err != nil {
		return err
	}
	if err := s.cache.Set(ctx, key, dst); err != nil {
		s.log.Warn("content cache write failed", zap.String("key", key), zap.Error(err))
	}
	return nil
}

func (s *ContentService) invalidate(ctx context.Context, prefix string) {
	if err := s.cache.DeletePrefix(ctx, prefix); err != nil {
		s.log.Warn("content cache invalidation failed", zap.String("prefix", prefix), zap.Error(err))
	}
}

func (s *ContentService) ListPosts(ctx context.Context, l i18n.Locale, filter repository.ContentFilter) ([]PostView, error) {
	var out []PostView
	key := blogPrefix + "list:" + string(l) + ":" + filter.CacheKey()
	err := s.cached(ctx, key, &out, func() error {
		posts, err := s.content.ListPosts(ctx, filter)
		if err != nil {
			return classify(err, "Failed to list posts")
		}
		out = make([]PostView, 0, len(posts))
		for i := range posts {
			out = append(out, postView(&posts[i], l, false))
		}
		return nil
	})
	return out, err
}

func (s *ContentService) GetPost(ctx context.Context, l i18n.Locale, slug string) (*PostView, error) {
	var out PostView
	key := blogPrefix + "slug:" + string(l) + ":" + slug
	err := s.cached(ctx, key, &out, func() error {
		post, err := s.content.GetPostBySlug(ctx, slug, true)
		if err != nil {
			return classify(err, "Failed to load post")
		}
		out = postView(post, l, true)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ContentService) ListPortfolio(ctx context.Context, l i18n.Locale, filter repository.ContentFilter) ([]PortfolioView, error) {
	var out []PortfolioView
	key := portfolioPrefix + "list:" + string(l) + ":" + filter.CacheKey()
	err := s.cached(ctx, key, &out, func() error {
		items, err := s.content.ListPortfolio(ctx, filter)
		if err != nil {
			return classify(err, "Failed to list portfolio")
		}
		out = make([]PortfolioView, 0, len(items))
		for i := range items {
			out = append(out, portfolioView(&items[i], l))
		}
		return nil
	})
	return out, err
}

func (s *ContentService) GetPortfolio(ctx context.Context, l i18n.Locale, slug string) (*PortfolioView, error) {
	var out PortfolioView
	key := portfolioPrefix + "slug:" + string(l) + ":" + slug
	err := s.cached(ctx, key, &out, func() error {
		item, err := s.content.GetPortfolioBySlug(ctx, slug, true)
		if err != nil {
			return classify(err, "Failed to load portfolio item")
		}
		out = portfolioView(item, l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminListPosts returns every post, drafts included, with all translations.
func (s *ContentService) AdminListPosts(ctx context.Context, filter repository.ContentFilter) ([]model.BlogPost, error) {
	filter.PublishedOnly = false
	posts, err := s.content.ListPosts(ctx, filter)
	if err != nil {
		return nil, classify(err, "Failed to list posts")
	}
	return posts, nil
}

func (s *ContentService) AdminListPortfolio(ctx context.Context, filter repository.ContentFilter) ([]model.PortfolioItem, error) {
	filter.PublishedOnly = false
	items, err := s.content.ListPortfolio(ctx, filter)
	if err != nil {
		return nil, classify(err, "Failed to list portfolio")
	}
	return items, nil
}

type PostInput struct {
	Slug       string    `json:"slug"`
	Title      i18n.Text `json:"title"`
	Excerpt    i18n.Text `json:"excerpt"`
	Content    i18n.Text `json:"content"`
	CoverImage string    `json:"coverImage"`
	Published  bool      `json:"published"`
}

func (s *ContentService) sanitize(t i18n.Text) i18n.Text {
	return i18n.Text{
		En: s.policy.Sanitize(t.En),
		Ar: s.policy.Sanitize(t.Ar),
		He: s.policy.Sanitize(t.He),
	}
}

func plain(t i18n.Text) i18n.Text {
	return i18n.Text{
		En: strings.TrimSpace(t.En),
		Ar: strings.TrimSpace(t.Ar),
		He: strings.TrimSpace(t.He),
	}
}

func checkSlug(slug string) error {
	if !slugRe.MatchString(slug) {
		return apperr.Validation("slug must be lowercase words joined by hyphens")
	}
	return nil
}

func (s *ContentService) applyPost(post *model.BlogPost, in PostInput) error {
	if err := checkSlug(in.Slug); err != nil {
		return err
	}
	title := plain(in.Title)
	if title.IsEmpty() {
		return apperr.Validation("title is required in at least one locale")
	}
	post.Slug = in.Slug
	post.Title = title
	post.Excerpt = plain(in.Excerpt)
	post.Content = s.sanitize(in.Content)
	post.CoverImage = strings.TrimSpace(in.CoverImage)
	switch {
	case in.Published && post.PublishedAt == nil:
		now := s.now()
		post.PublishedAt = &now
	case !in.Published:
		post.PublishedAt = nil
	}
	post.Published = in.Published
	return nil
}

func (s *ContentService) CreatePost(ctx context.Context, authorID uuid.UUID, in PostInput) (*model.BlogPost, error) {
	post := &model.BlogPost{AuthorID: &authorID}
	if err := s.applyPost(post, in); err != nil {
		return nil, err
	}
	if err := s.content.CreatePost(ctx, post); err != nil {
		return nil, classify(err, "Failed to create post")
	}
	s.invalidate(ctx, blogPrefix)
	return post, nil
}

func (s *ContentService) UpdatePost(ctx context.Context, id uuid.UUID, in PostInput) (*model.BlogPost, error) {
	post, err := s.content.GetPostByID(ctx, id)
	if err != nil {
		return nil, classify(err, "Failed to load post")
	}
	if err := s.applyPost(post, in); err != nil {
		return nil, err
	}
	if err := s.content.SavePost(ctx, post); err != nil {
		return nil, classify(err, "Failed to update post")
	}
	s.invalidate(ctx, blogPrefix)
	return post, nil
}

func (s *ContentService) DeletePost(ctx context.Context, id uuid.UUID) error {
	if err := s.content.DeletePost(ctx, id); err != nil {
		return classify(err, "Failed to delete post")
	}
	s.invalidate(ctx, blogPrefix)
	return nil
}

type PortfolioInput struct {
	Slug         string    `json:"slug"`
	Title        i18n.Text `json:"title"`
	Description  i18n.Text `json:"description"`
	Category     string    `json:"category"`
	Client       string    `json:"client"`
	MediaURL     string    `json:"mediaUrl"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	Featured     bool      `json:"featured"`
	Order        int       `json:"order"`
	Published    bool      `json:"published"`
}

func applyPortfolio(item *model.PortfolioItem, in PortfolioInput) error {
	if err := checkSlug(in.Slug); err != nil {
		return err
	}
	title := plain(in.Title)
	if title.IsEmpty() {
		return apperr.Validation("title is required in at least one locale")
	}
	if in.Order < 0 {
		return apperr.Validation("order must not be negative")
	}
	item.Slug = in.Slug
	item.Title = title
	item.Description = plain(in.Description)
	item.Category = strings.TrimSpace(in.Category)
	item.Client = strings.TrimSpace(in.Client)
	item.MediaURL = strings.TrimSpace(in.MediaURL)
	item.ThumbnailURL = strings.TrimSpace(in.ThumbnailURL)
	item.Featured = in.Featured
	item.Order = in.Order
	item.Published = in.Published
	return nil
}

func (s *ContentService) CreatePortfolio(ctx context.Context, in PortfolioInput) (*model.PortfolioItem, error) {
	item := &model.PortfolioItem{}
	if err := applyPortfolio(item, in); err != nil {
		return nil, err
	}
	if err := s.content.CreatePortfolio(ctx, item); err != nil {
		return nil, classify(err, "Failed to create portfolio item")
	}
	s.invalidate(ctx, portfolioPrefix)
	return item, nil
}

func (s *ContentService) UpdatePortfolio(ctx context.Context, id uuid.UUID, in PortfolioInput) (*model.PortfolioItem, error) {
	item, err := s.content.GetPortfolioByID(ctx, id)
	if err != nil {
		return nil, classify(err, "Failed to load portfolio item")
	}
	if err := applyPortfolio(item, in); err != nil {
		return nil, err
	}
	if err := s.content.SavePortfolio(ctx, item); err != nil {
		return nil, classify(err, "Failed to update portfolio item")
	}
	s.invalidate(ctx, portfolioPrefix)
	return item, nil
}

func (s *ContentService) DeletePortfolio(ctx context.Context, id uuid.UUID) error {
	if err := s.content.DeletePortfolio(ctx, id); err != nil {
		return classify(err, "Failed to delete portfolio item")
	}
	s.invalidate(ctx, portfolioPrefix)
	return nil
}
