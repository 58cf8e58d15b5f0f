package worker

// invitation_worker.go
// Processes jobs from QueueInvitacion: mails a team invitation to an email
// address that has no registered profile yet.

import (
	"context"
	"encoding/json"
	"fmt"

	"tiendapos/internal/infra"
	"tiendapos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type InvitationWorker struct {
	profiles repository.ProfileRepository
	mailer   *infra.Mailer
}

func NewInvitationWorker(profiles repository.ProfileRepository, mailer *infra.Mailer) *InvitationWorker {
	return &InvitationWorker{profiles: profiles, mailer: mailer}
}

func (w *InvitationWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload InvitationPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("invitation_worker: invalid payload")
		return nil
	}
	if payload.Email == "" {
		log.Warn().Msg("invitation_worker: empty email, skipping")
		return nil
	}

	businessName := "un negocio"
	if ownerID, err := uuid.Parse(payload.OwnerID); err == nil {
		if owner, err := w.profiles.FindByID(ctx, ownerID); err == nil && owner.BusinessName != "" {
			businessName = owner.BusinessName
		}
	}

	if err := w.mailer.SendInvitation(payload.Email, businessName, payload.Role); err != nil {
		return fmt.Errorf("invitation_worker: send mail: %w", err)
	}
	log.Info().Str("to", payload.Email).Msg("invitation_worker: invitation sent")
	return nil
}
