package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

func (j *JobService) handleWelcomeEmailTask(ctx context.Context, t *asynq.Task) error {
	var p WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal welcome email payload: %v: %w", err, asynq.SkipRetry)
	}

	j.logger.Info().
		Str("type", "welcome").
		Str("to", p.To).
		Msg("Processing welcome email task")

	if err := j.mailer.SendWelcomeEmail(ctx, p.To, p.Name); err != nil {
		j.logger.Error().
			Str("type", "welcome").
			Str("to", p.To).
			Err(err).
			Msg("Failed to send welcome email")
		return err
	}

	j.logger.Info().
		Str("type", "welcome").
		Str("to", p.To).
		Msg("Successfully sent welcome email")

	return nil
}

func (j *JobService) handlePhotoLikedEmailTask(ctx context.Context, t *asynq.Task) error {
	var p PhotoLikedEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal photo liked payload: %v: %w", err, asynq.SkipRetry)
	}

	log := j.logger.With().
		Str("type", "photo_liked").
		Str("to", p.To).
		Int64("photo_id", p.PhotoID).
		Logger()

	if err := j.mailer.SendPhotoLikedEmail(ctx, p.To, p.OwnerName, p.LikerLogin, p.PhotoTitle); err != nil {
		log.Error().Err(err).Msg("Failed to send photo liked email")
		return err
	}

	log.Info().Msg("Successfully sent photo liked email")
	return nil
}
