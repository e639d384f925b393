package clinic

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain"
	clinicDomain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/clinic"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/media"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
	"github.com/BruksfildServices01/clinic-scheduler/internal/validators"
)

type UpdateInput struct {
	Name     *string `validate:"omitempty,min=2,max=100"`
	Phone    *string `validate:"omitempty,max=20"`
	Email    *string `validate:"omitempty,email,max=100"`
	Address  *string `validate:"omitempty,max=255"`
	Timezone *string
}

// Settings cuida dos dados cadastrais da clínica do usuário autenticado.
type Settings struct {
	clinics clinicDomain.Repository
	logos   media.Uploader
	audit   audit.Recorder
}

// NewSettings aceita logos == nil: nesse caso o upload de logo fica desabilitado.
func NewSettings(
	clinics clinicDomain.Repository,
	logos media.Uploader,
	audit audit.Recorder,
) *Settings {
	return &Settings{
		clinics: clinics,
		logos:   logos,
		audit:   audit,
	}
}

func (s *Settings) Get(ctx context.Context, clinicID string) (*models.Clinic, error) {
	c, err := s.clinics.GetByID(ctx, clinicID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrNotFound("clinic_not_found", "Clínica não encontrada.")
	}
	return c, err
}

func (s *Settings) Update(ctx context.Context, clinicID string, in UpdateInput) (*models.Clinic, error) {
	if err := validators.Struct(in); err != nil {
		return nil, err
	}

	c, err := s.Get(ctx, clinicID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		c.Name = strings.TrimSpace(*in.Name)
	}
	if in.Phone != nil {
		c.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Email != nil {
		c.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	if in.Address != nil {
		c.Address = strings.TrimSpace(*in.Address)
	}
	if in.Timezone != nil {
		if !timezone.IsValid(*in.Timezone) {
			return nil, httperr.ErrValidation("invalid_timezone", "Fuso horário inválido.")
		}
		c.Timezone = *in.Timezone
	}

	if err := s.clinics.Update(ctx, c); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.Event{
		ClinicID: clinicID,
		Action:   "clinic_updated",
		Entity:   "clinic",
		EntityID: &c.ID,
	})

	return c, nil
}

// UploadLogo converte a imagem para webp, envia ao storage e grava a URL.
func (s *Settings) UploadLogo(ctx context.Context, clinicID string, r io.Reader) (*models.Clinic, error) {
	if s.logos == nil {
		return nil, httperr.ErrValidation("logo_upload_disabled", "Upload de logo não está configurado.")
	}

	c, err := s.Get(ctx, clinicID)
	if err != nil {
		return nil, err
	}

	data, err := media.ProcessLogo(r)
	switch {
	case errors.Is(err, media.ErrTooLarge):
		return nil, httperr.ErrValidation("image_too_large", "A imagem deve ter no máximo 5 MB.")
	case errors.Is(err, media.ErrUnsupportedImage):
		return nil, httperr.ErrValidation("invalid_image", "Envie uma imagem JPEG, PNG ou WebP.")
	case err != nil:
		return nil, err
	}

	key := fmt.Sprintf("clinics/%s/logo-%s.webp", c.ID, uuid.NewString())
	url, err := s.logos.Put(ctx, key, data, "image/webp")
	if err != nil {
		return nil, err
	}

	c.LogoURL = url
	if err := s.clinics.Update(ctx, c); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.Event{
		ClinicID: clinicID,
		Action:   "clinic_logo_updated",
		Entity:   "clinic",
		EntityID: &c.ID,
		Metadata: map[string]any{"key": key, "bytes": len(data)},
	})

	zerolog.Ctx(ctx).Info().Str("clinic_id", clinicID).Str("key", key).Msg("clinic logo uploaded")

	return c, nil
}
