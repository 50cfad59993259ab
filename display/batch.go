package display

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/decibelcooper/sctview/event"
)

// Job is a scene to be saved to Path.
type Job struct {
	Scene *Scene
	Path  string
}

// SaveAll saves jobs with at most workers renderings in flight. It stops
// at the first failure or when ctx is done.
func SaveAll(ctx context.Context, jobs []Job, st Style, workers int, log *zap.Logger) error {
	if workers < 1 {
		workers = 1
	}
	if log == nil {
		log = zap.NewNop()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, job := range jobs {
		job := job
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := Save(job.Path, job.Scene, st); err != nil {
				return err
			}
			log.Debug("saved event display", zap.String("path", job.Path))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// Scenes builds the scenes of n events starting at first, stepping w
// forward. It stops early at the last event.
func Scenes(w *event.Window, first, n int64, opts Options) ([]*Scene, error) {
	if err := w.Goto(first); err != nil {
		return nil, err
	}
	opts.NEvents = w.Len()

	var scenes []*Scene
	for i := int64(0); i < n; i++ {
		s, err := BuildScene(w.Current(), w.Bounds(), opts)
		if err != nil {
			return nil, err
		}
		scenes = append(scenes, s)

		if i == n-1 {
			break
		}
		ok, err := w.Forward()
		if err != nil {
			return nil, fmt.Errorf("could not step to event %d: %w", w.Index()+1, err)
		}
		if !ok {
			break
		}
	}
	return scenes, nil
}
