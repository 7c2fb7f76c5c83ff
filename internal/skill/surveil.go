package skill

import (
	"context"

	log "log/slog"

	"jarvis/internal/nlu"
)

type Controller interface {
	Surveillance
	Status(ctx context.Context) string
	StartRecording(ctx context.Context)
	StopRecording(ctx context.Context)
	FeedURL(camera string) string
}

type Surveil struct {
	CCTV   Controller
	Opener Opener
}

func (s *Surveil) Status(ctx context.Context, _ Args) Result {
	return OK("Surveillance system is %s", s.CCTV.Status(ctx))
}

func (s *Surveil) Record(ctx context.Context, _ Args) Result {
	s.CCTV.StartRecording(ctx)
	return OK("Recording started")
}

func (s *Surveil) Stop(ctx context.Context, _ Args) Result {
	s.CCTV.StopRecording(ctx)
	return OK("Recording stopped")
}

// View opens a single camera feed, or the full application when no camera
// number was heard.
func (s *Surveil) View(ctx context.Context, args Args) Result {
	camera := args[nlu.ArgCamera]
	if camera == "" {
		return s.CCTV.Launch(ctx)
	}

	if err := s.Opener.OpenURL(s.CCTV.FeedURL(camera)); err != nil {
		log.Warn("Failed to open camera feed", "camera", camera, "err", err)
	}
	return OK("Showing camera %s", camera)
}
