package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lrstanley/go-ytdlp"
	"golang.org/x/time/rate"

	"github.com/jabberjabberjabber/llm-jukebox/internal/models"
	"github.com/jabberjabberjabber/llm-jukebox/internal/shared"
)

const searchPrefix = "ytsearch1:"

// YTDLPService implements [Service] on top of the yt-dlp binary. One
// subprocess per call, rate limited and bounded by the configured timeout.
type YTDLPService struct {
	downloadDir string
	audioFormat string
	audioQual   string
	timeout     time.Duration
	limiter     *rate.Limiter
	logger      *log.Logger
}

// NewYTDLPService creates a provider from config. The yt-dlp binary itself
// is resolved lazily on first use (see [Install]).
func NewYTDLPService(cfg *shared.Config, logger *log.Logger) *YTDLPService {
	limit := rate.Limit(cfg.Provider.RateLimit)
	if limit <= 0 {
		limit = rate.Inf
	}

	timeout := time.Duration(cfg.Provider.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}

	return &YTDLPService{
		downloadDir: cfg.Library.DownloadDir,
		audioFormat: cfg.Provider.AudioFormat,
		audioQual:   cfg.Provider.AudioQuality,
		timeout:     timeout,
		limiter:     rate.NewLimiter(limit, 1),
		logger:      logger,
	}
}

// Install downloads a managed yt-dlp binary when none is on PATH. Safe to
// call on every startup.
func Install(ctx context.Context) error {
	if _, err := ytdlp.Install(ctx, nil); err != nil {
		return fmt.Errorf("%w: installing yt-dlp: %v", shared.ErrProvider, err)
	}

	return nil
}

func (s *YTDLPService) Name() string {
	return "yt-dlp"
}

// SearchOne runs a full-extraction single-result search so the candidate
// carries the duration and description needed downstream.
func (s *YTDLPService) SearchOne(ctx context.Context, query string) (*models.Candidate, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: empty query", shared.ErrInvalidInput)
	}

	ctx, cancel, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}

	defer cancel()

	s.logger.Debug("searching provider", "query", query)

	cmd := ytdlp.New().
		SkipDownload().
		NoPlaylist().
		NoProgress().
		DumpSingleJSON()

	result, err := cmd.Run(ctx, searchPrefix+query)
	if err != nil {
		return nil, fmt.Errorf("%w: search %q: %v", shared.ErrProvider, query, err)
	}

	candidate, err := parseCandidate([]byte(result.Stdout))
	if err != nil {
		return nil, fmt.Errorf("%w: search %q: %v", shared.ErrProvider, query, err)
	}

	return candidate, nil
}

// Describe fetches metadata for a direct URL without downloading anything.
func (s *YTDLPService) Describe(ctx context.Context, url string) (*models.Candidate, error) {
	if strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("%w: empty url", shared.ErrInvalidInput)
	}

	ctx, cancel, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}

	defer cancel()

	cmd := ytdlp.New().
		SkipDownload().
		NoPlaylist().
		NoProgress().
		DumpSingleJSON()

	result, err := cmd.Run(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: describe %q: %v", shared.ErrProvider, url, err)
	}

	candidate, err := parseCandidate([]byte(result.Stdout))
	if err != nil {
		return nil, fmt.Errorf("%w: describe %q: %v", shared.ErrProvider, url, err)
	}

	if candidate == nil {
		return nil, fmt.Errorf("%w: no metadata for %q", shared.ErrNotFound, url)
	}

	return candidate, nil
}

// Fetch downloads the candidate and transcodes it to the configured audio
// format, returning the path of the finished file.
func (s *YTDLPService) Fetch(ctx context.Context, candidate *models.Candidate, query string) (string, error) {
	if candidate == nil || candidate.WebpageURL == "" {
		return "", fmt.Errorf("%w: candidate has no source url", shared.ErrInvalidInput)
	}

	ctx, cancel, err := s.acquire(ctx)
	if err != nil {
		return "", err
	}

	defer cancel()

	s.logger.Info("fetching audio", "title", candidate.Title, "url", candidate.WebpageURL)

	cmd := ytdlp.New().
		ForceOverwrites().
		RestrictFilenames().
		NoPlaylist().
		NoProgress().
		ExtractAudio().
		AudioFormat(s.audioFormat).
		AudioQuality(s.audioQual).
		Output(filepath.Join(s.downloadDir, "%(title)s.%(ext)s"))

	result, err := cmd.Run(ctx, candidate.WebpageURL)
	if err != nil {
		return "", fmt.Errorf("%w: fetch %q: %v", shared.ErrProvider, candidate.Title, err)
	}

	path, err := s.resultPath(result)
	if err != nil {
		return "", fmt.Errorf("%w: fetch %q: %v", shared.ErrProvider, candidate.Title, err)
	}

	return path, nil
}

// acquire applies the rate limit and the per-call timeout.
func (s *YTDLPService) acquire(ctx context.Context) (context.Context, context.CancelFunc, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", shared.ErrProvider, err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)

	return ctx, cancel, nil
}

// resultPath recovers the finished file path from the extracted info. The
// reported filename is the pre-transcode one, so the extension is swapped
// for the configured audio format.
func (s *YTDLPService) resultPath(result *ytdlp.Result) (string, error) {
	infos, err := result.GetExtractedInfo()
	if err != nil {
		return "", fmt.Errorf("reading extracted info: %v", err)
	}

	for _, info := range infos {
		if info == nil || info.Filename == nil || *info.Filename == "" {
			continue
		}

		return audioPathFor(*info.Filename, s.audioFormat), nil
	}

	return "", fmt.Errorf("no output filename reported")
}

// audioPathFor swaps the extension of a downloaded media path for the
// post-transcode audio format.
func audioPathFor(path, format string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		return path + "." + format
	}

	return strings.TrimSuffix(path, ext) + "." + format
}

// ytInfo is the subset of yt-dlp's single-JSON dump this package reads.
// Search results arrive as a playlist wrapper with one entry.
type ytInfo struct {
	Type        string   `json:"_type"`
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Uploader    string   `json:"uploader"`
	Channel     string   `json:"channel"`
	Duration    float64  `json:"duration"`
	Description string   `json:"description"`
	WebpageURL  string   `json:"webpage_url"`
	Entries     []ytInfo `json:"entries"`
}

// parseCandidate extracts a single candidate from a single-JSON dump.
// An empty result set returns (nil, nil).
func parseCandidate(data []byte) (*models.Candidate, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, nil
	}

	var info ytInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("parsing metadata: %v", err)
	}

	// A zero-result search still dumps a playlist wrapper whose id and
	// title echo the query, so the wrapper itself is never a candidate.
	if info.Type == "playlist" {
		if len(info.Entries) == 0 {
			return nil, nil
		}
		info = info.Entries[0]
	}

	if info.ID == "" && info.Title == "" {
		return nil, nil
	}

	uploader := info.Uploader
	if uploader == "" {
		uploader = info.Channel
	}

	candidate := models.NewCandidate(info.ID, info.Title, uploader, int(info.Duration), info.Description, info.WebpageURL)

	return candidate, nil
}
