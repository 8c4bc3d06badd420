package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SeakMengs/ConfPortal/internal/constant"
	"github.com/SeakMengs/ConfPortal/internal/model"
	"gorm.io/gorm"
)

type CreateConferenceInput struct {
	Name               string
	Acronym            string
	Venue              string
	StartsOn           time.Time
	EndsOn             time.Time
	SubmissionDeadline time.Time
}

func (s *Service) CreateConference(ctx context.Context, actor Actor, in CreateConferenceInput) (conference *model.Conference, err error) {
	defer s.observe("create_conference", time.Now(), &err)

	if err := actor.require(constant.ConferenceManage); err != nil {
		return nil, err
	}

	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Acronym) == "" {
		return nil, newError(KindInvalidInput, "name", "name and acronym are required")
	}

	if in.EndsOn.Before(in.StartsOn) {
		return nil, newError(KindInvalidInput, "endsOn", "conference cannot end before it starts")
	}

	if in.SubmissionDeadline.After(in.StartsOn) {
		return nil, newError(KindInvalidInput, "submissionDeadline", "submission deadline must be before the conference starts")
	}

	conference = &model.Conference{
		Name:               strings.TrimSpace(in.Name),
		Acronym:            strings.ToUpper(strings.TrimSpace(in.Acronym)),
		Venue:              in.Venue,
		StartsOn:           in.StartsOn,
		EndsOn:             in.EndsOn,
		SubmissionDeadline: in.SubmissionDeadline,
		OrganizerID:        actor.ID,
	}

	if err := s.repo.Conference.Create(ctx, nil, conference); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, newError(KindInvalidInput, "acronym", "acronym %s is already taken", conference.Acronym)
		}
		return nil, fmt.Errorf("failed to create conference: %w", err)
	}

	return conference, nil
}

func (s *Service) GetConference(ctx context.Context, conferenceID string) (*model.Conference, error) {
	conference, err := s.repo.Conference.GetById(ctx, nil, conferenceID)
	if err != nil {
		return nil, notFoundOr(err, "conferenceId", "conference")
	}
	return conference, nil
}

func (s *Service) ListConferences(ctx context.Context, page, pageSize uint) ([]model.Conference, int64, error) {
	conferences, total, err := s.repo.Conference.List(ctx, nil, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list conferences: %w", err)
	}
	return conferences, total, nil
}

type AgendaItemInput struct {
	Title    string
	Speaker  string
	Room     string
	StartsAt time.Time
	EndsAt   time.Time
	PaperID  string
}

// CreateAgendaItem schedules a slot. A linked paper must be accepted into the
// same conference, and two slots cannot share a room at the same time.
func (s *Service) CreateAgendaItem(ctx context.Context, actor Actor, conferenceID string, in AgendaItemInput) (item *model.AgendaItem, err error) {
	defer s.observe("create_agenda_item", time.Now(), &err)

	if err := actor.require(constant.AgendaManage); err != nil {
		return nil, err
	}

	if strings.TrimSpace(in.Title) == "" {
		return nil, newError(KindInvalidInput, "title", "title is required")
	}

	if !in.EndsAt.After(in.StartsAt) {
		return nil, newError(KindInvalidInput, "endsAt", "agenda item must end after it starts")
	}

	err = s.repo.WithTx(ctx, func(tx *gorm.DB) error {
		// concurrent slots in one conference queue here before the room check
		if _, err := s.repo.Conference.GetByIdForUpdate(ctx, tx, conferenceID); err != nil {
			return notFoundOr(err, "conferenceId", "conference")
		}

		var paperID *string
		if in.PaperID != "" {
			paper, err := s.repo.Paper.GetById(ctx, tx, in.PaperID)
			if err != nil {
				return notFoundOr(err, "paperId", "paper")
			}
			if paper.ConferenceID != conferenceID {
				return newError(KindInvalidInput, "paperId", "paper belongs to another conference")
			}
			if paper.Status != constant.PaperStatusAccepted {
				return newError(KindInvalidInput, "paperId", "only accepted papers can be scheduled")
			}
			paperID = &paper.ID
		}

		existing, err := s.repo.Agenda.ListByConference(ctx, tx, conferenceID)
		if err != nil {
			return fmt.Errorf("failed to list agenda: %w", err)
		}

		room := strings.TrimSpace(in.Room)
		for _, e := range existing {
			if room != "" && strings.EqualFold(e.Room, room) && in.StartsAt.Before(e.EndsAt) && e.StartsAt.Before(in.EndsAt) {
				return newError(KindInvalidInput, "startsAt", "room %s is taken by %q at that time", room, e.Title)
			}
		}

		i := &model.AgendaItem{
			Title:        strings.TrimSpace(in.Title),
			Speaker:      in.Speaker,
			Room:         room,
			StartsAt:     in.StartsAt,
			EndsAt:       in.EndsAt,
			ConferenceID: conferenceID,
			PaperID:      paperID,
		}
		if err := s.repo.Agenda.Create(ctx, tx, i); err != nil {
			return fmt.Errorf("failed to create agenda item: %w", err)
		}

		item = i
		return nil
	})
	if err != nil {
		return nil, err
	}

	return item, nil
}

type AgendaDay struct {
	Date  string             `json:"date"`
	Items []model.AgendaItem `json:"items"`
}

// GroupAgendaByDay expects items ordered by start time and groups them by
// their UTC calendar day.
func GroupAgendaByDay(items []model.AgendaItem) []AgendaDay {
	days := []AgendaDay{}
	for _, item := range items {
		date := item.StartsAt.UTC().Format(time.DateOnly)
		if len(days) == 0 || days[len(days)-1].Date != date {
			days = append(days, AgendaDay{Date: date})
		}
		days[len(days)-1].Items = append(days[len(days)-1].Items, item)
	}
	return days
}

func (s *Service) ListAgenda(ctx context.Context, conferenceID string) ([]AgendaDay, error) {
	if _, err := s.repo.Conference.GetById(ctx, nil, conferenceID); err != nil {
		return nil, notFoundOr(err, "conferenceId", "conference")
	}

	items, err := s.repo.Agenda.ListByConference(ctx, nil, conferenceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list agenda: %w", err)
	}

	return GroupAgendaByDay(items), nil
}

func (s *Service) DeleteAgendaItem(ctx context.Context, actor Actor, conferenceID, itemID string) (err error) {
	defer s.observe("delete_agenda_item", time.Now(), &err)

	if err := actor.require(constant.AgendaManage); err != nil {
		return err
	}

	if err := s.repo.Agenda.Delete(ctx, nil, conferenceID, itemID); err != nil {
		return notFoundOr(err, "agendaItemId", "agenda item")
	}

	return nil
}
