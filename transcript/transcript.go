package transcript

import (
	"context"
	"regexp"
	"strings"

	"github.com/dkarlov/yt-summary/errors"
	"github.com/dkarlov/yt-summary/models"
	"github.com/sirupsen/logrus"
)

// Matches the known YouTube URL shapes. The capture group is the video ID,
// terminated by &, newline, ? or #.
var idPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/|youtube\.com/v/|youtube\.com/\?v=)([^&\n?#]+)`),
	regexp.MustCompile(`youtube\.com/shorts/([^&\n?#]+)`),
}

// ExtractVideoID extracts the video ID from a YouTube URL.
func ExtractVideoID(url string) (string, error) {
	const op = "transcript.ExtractVideoID"

	for _, pattern := range idPatterns {
		if m := pattern.FindStringSubmatch(url); m != nil {
			return m[1], nil
		}
	}

	return "", errors.InvalidReference(op, nil, "could not extract video ID from URL: "+url)
}

// CaptionClient retrieves the caption track for a video. The concrete
// implementation owns the wire format; the service only consumes segments.
type CaptionClient interface {
	GetTranscript(ctx context.Context, videoID string, languages []string) (models.Transcript, error)
}

type Service struct {
	client CaptionClient
	logger *logrus.Logger
}

func NewService(client CaptionClient) *Service {
	return &Service{
		client: client,
		logger: logrus.StandardLogger(),
	}
}

// Fetch retrieves the transcript for a video ID or URL, trying the given
// language codes in preference order.
func (s *Service) Fetch(ctx context.Context, videoIDOrURL string, languages []string) (models.Transcript, error) {
	const op = "transcript.Service.Fetch"

	if len(languages) == 0 {
		languages = []string{"en"}
	}

	videoID := videoIDOrURL
	if strings.Contains(videoIDOrURL, "youtube.com") || strings.Contains(videoIDOrURL, "youtu.be") {
		id, err := ExtractVideoID(videoIDOrURL)
		if err != nil {
			return nil, err
		}
		videoID = id
	}

	s.logger.WithFields(logrus.Fields{
		"video_id":  videoID,
		"languages": languages,
	}).Debug("Fetching transcript")

	transcript, err := s.client.GetTranscript(ctx, videoID, languages)
	if err != nil {
		s.logger.WithError(err).WithField("video_id", videoID).Warn("Transcript retrieval failed")
		return nil, errors.TranscriptUnavailable(op, err, "could not retrieve transcript")
	}

	return transcript, nil
}

// FetchText retrieves the transcript and joins all segment texts with a
// single space, preserving chronological order.
func (s *Service) FetchText(ctx context.Context, videoIDOrURL string, languages []string) (string, error) {
	transcript, err := s.Fetch(ctx, videoIDOrURL, languages)
	if err != nil {
		return "", err
	}
	return transcript.Text(), nil
}
