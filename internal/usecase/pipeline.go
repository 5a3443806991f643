package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"

	"TransientLoader/internal/classify"
	"TransientLoader/internal/domain"
	"TransientLoader/internal/infrastructure/parser"
	"TransientLoader/internal/ports"
)

// PipelineDeps wires all driven adapters into the ingestion pipeline.
type PipelineDeps struct {
	Pages         ports.PageFetcher
	Files         ports.FileFetcher
	Repository    ports.TransientRepository
	Artifacts     ports.ArtifactStore
	Observatories ports.ObservatoryResolver
	Logger        *slog.Logger
}

// Pipeline ingests one transient report: resolve frames, extract metadata,
// classify and download images, persist a single idempotent record.
type Pipeline struct {
	pages         ports.PageFetcher
	files         ports.FileFetcher
	repository    ports.TransientRepository
	artifacts     ports.ArtifactStore
	observatories ports.ObservatoryResolver
	logger        *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		pages:         deps.Pages,
		files:         deps.Files,
		repository:    deps.Repository,
		artifacts:     deps.Artifacts,
		observatories: deps.Observatories,
		logger:        logger,
	}
}

// ProcessReport runs one pass for the transient report at reportURL. The
// persistence state is checked before any frame content is fetched so a
// complete transient costs no downloads.
func (p *Pipeline) ProcessReport(ctx context.Context, reportURL string) error {
	trid, mainPage, err := splitReportURL(reportURL)
	if err != nil {
		return err
	}

	status, err := p.repository.Status(ctx, trid)
	if err != nil {
		return fmt.Errorf("check transient %s: %w", trid, err)
	}
	if status == domain.StatusComplete {
		p.logger.Info("transient already complete, nothing to do", "id", trid)
		return nil
	}

	reportHTML, err := p.pages.FetchPage(ctx, reportURL)
	if err != nil {
		return fmt.Errorf("fetch report page: %w", err)
	}

	frames, err := parser.ResolveFrames(reportHTML)
	if err != nil {
		return fmt.Errorf("transient %s: %w", trid, err)
	}

	metaHTML, err := p.pages.FetchPage(ctx, mainPage+frames.Metadata)
	if err != nil {
		return fmt.Errorf("fetch metadata frame: %w", err)
	}
	rec, err := parser.ExtractMetadata(metaHTML, trid)
	if err != nil {
		return fmt.Errorf("transient %s: %w", trid, err)
	}

	rec.Path, err = p.artifacts.EnsureDir(rec)
	if err != nil {
		return err
	}
	if err := p.artifacts.WriteSidecar(rec); err != nil {
		p.logger.Warn("sidecar write failed", "id", trid, "error", err)
	}

	rec.ObsID, err = p.observatories.Resolve(reportURL)
	if err != nil {
		return fmt.Errorf("transient %s: %w", trid, err)
	}

	urls := p.collectImageURLs(ctx, mainPage, frames.Images)
	rec.Flags = p.downloadArtifacts(ctx, rec, urls)

	switch status {
	case domain.StatusPartial:
		if err := p.repository.Update(ctx, rec); err != nil {
			return err
		}
		p.logger.Info("transient artifacts updated", "id", trid, "path", rec.Path)
	default:
		if err := p.repository.Insert(ctx, rec); err != nil {
			return err
		}
		p.logger.Info("transient inserted", "id", trid, "path", rec.Path)
	}

	return nil
}

// collectImageURLs fetches each image frame and aggregates its extracted
// references. A frame that fails to fetch or parse is logged and skipped;
// losing one frame's artifacts must not abort the run.
func (p *Pipeline) collectImageURLs(ctx context.Context, mainPage string, frames []string) []string {
	var urls []string
	for _, frame := range frames {
		frameHTML, err := p.pages.FetchPage(ctx, mainPage+frame)
		if err != nil {
			p.logger.Warn("image frame fetch failed", "frame", frame, "error", err)
			continue
		}
		extracted, err := parser.ExtractImageURLs(frameHTML, mainPage)
		if err != nil {
			p.logger.Warn("image frame parse failed", "frame", frame, "error", err)
			continue
		}
		urls = append(urls, extracted...)
	}
	return urls
}

// downloadArtifacts classifies the aggregated URL list and downloads each
// classified image, returning the full flag set. Every slot is explicitly
// false unless its download succeeded.
func (p *Pipeline) downloadArtifacts(ctx context.Context, rec domain.TransientRecord, urls []string) domain.ArtifactFlags {
	var flags domain.ArtifactFlags

	for _, raw := range classify.EnsureSubtraction(urls) {
		res := classify.Classify(raw)
		switch {
		case res.Placeholder:
			flags.TR = false
		case res.Kind == classify.KindTransient:
			flags.TR = p.download(ctx, rec, res)
		case res.Kind == classify.KindDSS:
			flags.DSS = p.download(ctx, rec, res)
		default:
			flags.Early = p.download(ctx, rec, res)
		}
	}

	return flags
}

func (p *Pipeline) download(ctx context.Context, rec domain.TransientRecord, res classify.Result) bool {
	dest := filepath.Join(rec.Path, rec.ID+"."+res.Kind.Suffix())
	if err := p.files.DownloadFile(ctx, res.URL, dest); err != nil {
		p.logger.Warn("artifact download failed",
			"id", rec.ID, "kind", res.Kind.Suffix(), "url", res.URL, "error", err)
		return false
	}
	return true
}

// splitReportURL pulls the transient id from the report URL's query and
// derives the main page: scheme://host/{first path segment}/, the base all
// frame src values resolve against.
func splitReportURL(reportURL string) (trid, mainPage string, err error) {
	parsed, err := url.Parse(reportURL)
	if err != nil {
		return "", "", fmt.Errorf("parse report url: %w", err)
	}

	trid = parsed.Query().Get("id")
	if trid == "" {
		return "", "", fmt.Errorf("report url %s carries no transient id", reportURL)
	}

	segs := strings.Split(strings.TrimPrefix(parsed.Path, "/"), "/")
	if len(segs) == 0 || segs[0] == "" {
		return "", "", fmt.Errorf("report url %s has no base path segment", reportURL)
	}

	mainPage = fmt.Sprintf("%s://%s/%s/", parsed.Scheme, parsed.Host, segs[0])
	return trid, mainPage, nil
}
