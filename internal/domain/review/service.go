package review

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"pawtrails/internal/domain/user"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

type CreateInput struct {
	Comment string
	Grade   int
}

func (s *Service) Create(ctx context.Context, writerUUID, locationUUID string, in CreateInput) (*Review, error) {
	if strings.TrimSpace(writerUUID) == "" {
		return nil, fmt.Errorf("%w: review requires a writer", ErrInvalidInput)
	}
	if strings.TrimSpace(locationUUID) == "" {
		return nil, fmt.Errorf("%w: review requires a target location", ErrInvalidInput)
	}
	grade, err := ParseGrade(in.Grade)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	r := &Review{
		UUID:      newUUID(),
		Comment:   strings.TrimSpace(in.Comment),
		Grade:     grade,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, r, writerUUID, locationUUID); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) GetByUUID(ctx context.Context, uuid string) (*Review, error) {
	return s.repo.GetByUUID(ctx, uuid)
}

func (s *Service) ListForLocation(ctx context.Context, locationUUID string) ([]Review, error) {
	return s.repo.ListForLocation(ctx, locationUUID)
}

func (s *Service) ListByWriter(ctx context.Context, writerUUID string) ([]Review, error) {
	return s.repo.ListByWriter(ctx, writerUUID)
}

type UpdateInput struct {
	Comment *string
	Grade   *int
}

func (s *Service) Update(ctx context.Context, actorUUID, reviewUUID string, in UpdateInput) (*Review, error) {
	r, err := s.repo.GetByUUID(ctx, reviewUUID)
	if err != nil {
		return nil, err
	}
	if err := s.requireWriter(ctx, actorUUID, reviewUUID); err != nil {
		return nil, err
	}

	if in.Comment != nil {
		r.Comment = strings.TrimSpace(*in.Comment)
	}
	if in.Grade != nil {
		grade, err := ParseGrade(*in.Grade)
		if err != nil {
			return nil, err
		}
		r.Grade = grade
	}

	r.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) Delete(ctx context.Context, actorUUID, reviewUUID string) error {
	if _, err := s.repo.GetByUUID(ctx, reviewUUID); err != nil {
		return err
	}
	if err := s.requireWriter(ctx, actorUUID, reviewUUID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, reviewUUID)
}

func (s *Service) Writer(ctx context.Context, reviewUUID string) (*user.User, error) {
	return s.repo.Writer(ctx, reviewUUID)
}

func (s *Service) LocationOf(ctx context.Context, reviewUUID string) (string, error) {
	return s.repo.LocationOf(ctx, reviewUUID)
}

// AttachWriter attaches a WROTE edge to a review that has none. A review has
// exactly one writer; a second one is rejected with ErrWriterExists.
func (s *Service) AttachWriter(ctx context.Context, reviewUUID, userUUID string) (bool, error) {
	writer, err := s.repo.Writer(ctx, reviewUUID)
	if err != nil {
		return false, err
	}
	if writer != nil {
		if writer.UUID == userUUID {
			return false, nil
		}
		return false, ErrWriterExists
	}
	return s.repo.CreateWriter(ctx, reviewUUID, userUUID, s.now().UTC())
}

// AttachLocation attaches a FOR edge to a review that has none. A second
// target location is rejected with ErrLocationAttached.
func (s *Service) AttachLocation(ctx context.Context, reviewUUID, locationUUID string) (bool, error) {
	attached, err := s.repo.LocationOf(ctx, reviewUUID)
	if err != nil {
		return false, err
	}
	if attached != "" {
		if attached == locationUUID {
			return false, nil
		}
		return false, ErrLocationAttached
	}
	return s.repo.CreateFor(ctx, reviewUUID, locationUUID, s.now().UTC())
}

func (s *Service) requireWriter(ctx context.Context, actorUUID, reviewUUID string) error {
	writer, err := s.repo.Writer(ctx, reviewUUID)
	if err != nil {
		return err
	}
	if writer == nil || writer.UUID != actorUUID {
		return ErrNotWriter
	}
	return nil
}

func newUUID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
