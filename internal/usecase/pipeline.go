package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"PharmaNewsAgent/internal/domain"
	"PharmaNewsAgent/internal/ports"
)

// ArticleCollector gathers the cycle's candidate articles.
type ArticleCollector interface {
	Collect(ctx context.Context) []domain.Article
}

// ArticleSummarizer reduces one article to a bounded summary.
type ArticleSummarizer interface {
	Summarize(ctx context.Context, article domain.Article) (domain.Summary, error)
}

// PostRenderer builds the per-platform post mapping; the second result holds
// per-platform rendering errors.
type PostRenderer interface {
	Render(article domain.Article, summary domain.Summary) (map[domain.Platform]domain.PlatformPost, map[domain.Platform]error)
}

// PostDispatcher publishes the mapping, isolating per-platform failures.
type PostDispatcher interface {
	Dispatch(ctx context.Context, posts map[domain.Platform]domain.PlatformPost) map[domain.Platform]error
}

// Deps wires all collaborators into the orchestration pipeline.
type Deps struct {
	Collector   ArticleCollector
	Store       ports.ArticleStore
	Summarizer  ArticleSummarizer
	Renderer    PostRenderer
	Dispatcher  PostDispatcher
	Archiver    ports.PostArchiver
	Logger      *slog.Logger
	MaxArticles int
	Publish     bool
}

// Pipeline drives one cycle: collect, filter against the store, then per
// article summarize, render, persist, and optionally publish. Per-article
// failures are recorded as outcomes and never abort sibling work; only a
// store failure aborts the cycle, because without the store there is no
// idempotence guarantee.
type Pipeline struct {
	collector   ArticleCollector
	store       ports.ArticleStore
	summarizer  ArticleSummarizer
	renderer    PostRenderer
	dispatcher  PostDispatcher
	archiver    ports.PostArchiver
	logger      *slog.Logger
	maxArticles int
	publish     bool
	now         func() time.Time
}

// ArticleResult is one article's full outcome for this cycle.
type ArticleResult struct {
	Article       domain.Article
	Summary       domain.Summary
	Posts         map[domain.Platform]domain.PlatformPost
	Outcome       domain.Outcome
	RenderErrors  map[domain.Platform]error
	PublishErrors map[domain.Platform]error
}

// CycleReport summarizes one cycle for the caller. FailedByStage counts
// articles that terminally failed summarize/render, and individual platform
// posts that failed publish.
type CycleReport struct {
	CycleID     string
	StartedAt   time.Time
	CompletedAt time.Time

	Collected  int
	Duplicates int
	Summarized int
	Rendered   int
	Published  int

	FailedByStage map[string]int
	Results       []ArticleResult
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps Deps) *Pipeline {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		collector:   deps.Collector,
		store:       deps.Store,
		summarizer:  deps.Summarizer,
		renderer:    deps.Renderer,
		dispatcher:  deps.Dispatcher,
		archiver:    deps.Archiver,
		logger:      logger,
		maxArticles: deps.MaxArticles,
		publish:     deps.Publish,
		now:         time.Now,
	}
}

// RunCycle executes one full pass over the current feed snapshot. The
// returned report is valid even when the cycle aborts early.
func (p *Pipeline) RunCycle(ctx context.Context) (CycleReport, error) {
	report := CycleReport{
		CycleID:       uuid.NewString(),
		StartedAt:     p.now(),
		FailedByStage: map[string]int{},
	}
	logger := p.logger.With("cycle", report.CycleID)

	articles := p.collector.Collect(ctx)
	report.Collected = len(articles)

	pending, err := p.filter(ctx, articles, &report)
	if err != nil {
		report.CompletedAt = p.now()
		return report, err
	}
	logger.Info("cycle collected", "collected", report.Collected,
		"duplicates", report.Duplicates, "pending", len(pending))

	for _, article := range pending {
		result, err := p.processArticle(ctx, logger, article)
		report.Results = append(report.Results, result)
		p.tally(&report, result)
		if err != nil {
			report.CompletedAt = p.now()
			return report, err
		}
	}

	p.archive(logger, report.Results)

	report.CompletedAt = p.now()
	logger.Info("cycle complete",
		"summarized", report.Summarized, "rendered", report.Rendered,
		"published", report.Published, "failed", report.FailedByStage)
	return report, nil
}

// filter drops articles already processed with a success outcome and applies
// the per-cycle cap. Failed outcomes stay eligible: retry is the policy.
func (p *Pipeline) filter(ctx context.Context, articles []domain.Article, report *CycleReport) ([]domain.Article, error) {
	var pending []domain.Article
	for _, article := range articles {
		done, err := p.store.IsProcessed(ctx, article.Link)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
		}
		if done {
			report.Duplicates++
			continue
		}
		pending = append(pending, article)
	}
	if p.maxArticles > 0 && len(pending) > p.maxArticles {
		pending = pending[:p.maxArticles]
	}
	return pending, nil
}

// processArticle runs summarize, render, persist, and optionally publish for
// one article. The error return is non-nil only for store failures; stage
// failures end up in the result's outcome.
func (p *Pipeline) processArticle(ctx context.Context, logger *slog.Logger, article domain.Article) (ArticleResult, error) {
	result := ArticleResult{Article: article}

	summary, err := p.summarizer.Summarize(ctx, article)
	if err != nil {
		logger.Warn("summarize failed", "article", article.Link, "error", err)
		result.Outcome = domain.OutcomeSummarizeFailed
		return result, p.record(ctx, article.Link, result.Outcome)
	}
	result.Summary = summary

	posts, renderErrs := p.renderer.Render(article, summary)
	result.RenderErrors = renderErrs
	for platform, rerr := range renderErrs {
		logger.Warn("render failed", "article", article.Link, "platform", platform, "error", rerr)
	}
	if len(posts) == 0 {
		result.Outcome = domain.OutcomeRenderFailed
		return result, p.record(ctx, article.Link, result.Outcome)
	}
	result.Posts = posts

	// Success is persisted before any publish attempt: a crash mid-publish
	// must never cause a duplicate summarize/render on restart.
	result.Outcome = domain.OutcomeSuccess
	if err := p.record(ctx, article.Link, result.Outcome); err != nil {
		return result, err
	}

	if p.publish && p.dispatcher != nil {
		result.PublishErrors = p.dispatcher.Dispatch(ctx, posts)
	}

	return result, nil
}

func (p *Pipeline) record(ctx context.Context, link string, outcome domain.Outcome) error {
	err := p.store.Record(ctx, domain.ProcessingRecord{
		ArticleLink: link,
		ProcessedAt: p.now(),
		Outcome:     outcome,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

func (p *Pipeline) tally(report *CycleReport, result ArticleResult) {
	switch result.Outcome {
	case domain.OutcomeSummarizeFailed:
		report.FailedByStage["summarize"]++
		return
	case domain.OutcomeRenderFailed:
		report.Summarized++
		report.FailedByStage["render"]++
		return
	}

	report.Summarized++
	report.Rendered += len(result.Posts)
	for _, perr := range result.PublishErrors {
		if perr == nil {
			report.Published++
		} else {
			report.FailedByStage["publish"]++
		}
	}
}

// archive writes the cycle's rendered posts to the local archive. Archive
// failure is logged, never fatal: the posts already exist in the report.
func (p *Pipeline) archive(logger *slog.Logger, results []ArticleResult) {
	if p.archiver == nil {
		return
	}
	var flat []domain.PlatformPost
	for _, result := range results {
		platforms := make([]domain.Platform, 0, len(result.Posts))
		for platform := range result.Posts {
			platforms = append(platforms, platform)
		}
		sort.Slice(platforms, func(i, j int) bool { return platforms[i] < platforms[j] })
		for _, platform := range platforms {
			flat = append(flat, result.Posts[platform])
		}
	}
	if len(flat) == 0 {
		return
	}
	if err := p.archiver.Archive(flat); err != nil {
		logger.Warn("post archive failed", "error", err)
	}
}
